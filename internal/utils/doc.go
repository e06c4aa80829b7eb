// Package utils provides a collection of helper functions and utilities for common tasks,
// such as header handling, content type validation, key-value parsing, and type conversion.
// It is designed to simplify repetitive operations and ensure consistency across the application.
package utils
