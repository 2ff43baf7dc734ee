// Package errors provides the classified error primitives used across the Essential theme
// renderer and its tooling.
//
// Rendering itself never fails: hooks degrade to empty markup. Classified errors are reserved for
// the fallible edges around it (settings files, language packs, the icon table, the message store,
// fixtures and the preview server).
//
// Key features:
//   - ErrorCategory: Broad error classification (config, validation, store, render, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - HTTP and CLI adapters for error presentation
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryStore, "query unread messages").
//		WithContext("user_id", userID).
//		Build()
package errors
