package services

import "context"

type (
	requestIDKey struct{}
	directoryKey struct{}
)

// WithRequestID tags ctx with the correlation ID of one organize call. An
// empty id leaves ctx unchanged.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID, if any.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey{})
}

// WithDirectory tags ctx with the directory being organized.
func WithDirectory(ctx context.Context, dir string) context.Context {
	return withString(ctx, directoryKey{}, dir)
}

// DirectoryFromContext returns the directory being organized, if any.
func DirectoryFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, directoryKey{})
}

func withString(ctx context.Context, key any, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key any) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, _ := ctx.Value(key).(string)
	return value, value != ""
}
