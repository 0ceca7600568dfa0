// Package errors provides foundational, type-safe error primitives used across doclinks.
//
// Key features:
//   - ErrorCategory: broad error classification (config, typeexpr, tutorial, store, ...)
//   - ErrorSeverity: impact level (fatal, error, warning, info)
//   - ClassifiedError: structured error with category, severity, and context
//   - ErrorBuilder: fluent API for creating classified errors
//   - CLI adapter for exit codes and presentation
//
// Example usage:
//
//	err := errors.TypeExprError("unable to parse type expression").
//		WithCause(parseErr).
//		WithContext("expr", expr).
//		Build()
package errors
