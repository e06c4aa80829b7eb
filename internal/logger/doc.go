// Package logger wraps a process-wide zap logger behind context-aware helpers.
// Every logger created with a nil level follows the global level set by SetLevel,
// so the transport's debug output can be switched on after start-up.
package logger
