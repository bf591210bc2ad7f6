// Package services holds the application logic shared by the CLI and the
// HTTP server. TransformService runs the cleaning pipeline and persists runs,
// VocabularyService exposes the canonical vocabularies and HealthService
// reports liveness and dependency state.
package services
