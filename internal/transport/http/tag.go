package http

import "context"

type tagContextKey struct{}

// WithTag returns a copy of ctx carrying an opaque tag.
// Requests created with the returned context can later be cancelled with Dispatcher.CancelByTag.
func WithTag(ctx context.Context, tag any) context.Context {
	return context.WithValue(ctx, tagContextKey{}, tag)
}

// TagFromContext returns the tag stored in ctx, or nil.
func TagFromContext(ctx context.Context) any {
	if ctx == nil {
		return nil
	}

	return ctx.Value(tagContextKey{})
}
