package rest

import "errors"

// Static error definitions for better error handling.
var (
	// ErrServerConnection indicates that a request could not reach the server or was cancelled.
	ErrServerConnection = errors.New("server connection error")
	// ErrAuthorization indicates that credentials could not be applied to a request.
	ErrAuthorization = errors.New("authorization error")
	// ErrInvalidTimeout indicates that a transport timeout is negative.
	ErrInvalidTimeout = errors.New("timeout cannot be negative")
	// ErrTransportAlreadyCreated indicates that the shared transport client can no longer be changed.
	ErrTransportAlreadyCreated = errors.New("transport client is already created")
	// ErrUnknownContentKind indicates that a content kind name is not recognized.
	ErrUnknownContentKind = errors.New("unknown content kind")
	// ErrNilRequest indicates that a nil request was passed.
	ErrNilRequest = errors.New("request cannot be nil")
)
