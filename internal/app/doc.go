// Package app wires the funding pipeline together: configuration,
// telemetry, the optional SQL sink, the services and the HTTP router. The
// CLI builds one Application per invocation and either calls TransformFile
// or Run.
package app
