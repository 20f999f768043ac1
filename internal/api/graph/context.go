package graph

import "context"

type ctxKey struct{}

// WithIdempotencyKey attaches the Idempotency-Key header value to ctx.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	if key == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, key)
}

// IdempotencyKey returns the key attached by WithIdempotencyKey, or "".
func IdempotencyKey(ctx context.Context) string {
	key, _ := ctx.Value(ctxKey{}).(string)
	return key
}
