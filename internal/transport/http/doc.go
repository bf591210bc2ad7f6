// Package http implements the HTTP handlers of the funding service.
// Handlers stay thin: they decode and validate the request, call a service
// and render the result. Failures go through the shared ErrorHandler so every
// error body is an RFC 7807 problem document.
//
// Each handler exposes Routes, which the application mounts under /api/v1:
//
//	/transform           POST a CSV or XLSX body, get the cleaned run back
//	/vocabularies        GET the canonical vocabularies
//	/canonicalize        POST raw values, get their labels
//	/runs/{runID}/...    GET persisted summaries and records
//
// Health and metrics are mounted at the root.
package http
