package googlephotos

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKey struct{}

// withRequestID tags ctx with a fresh id so every log line of one call can be
// correlated.
func withRequestID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(ctx, requestIDKey{}, id), id
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return "-"
}
