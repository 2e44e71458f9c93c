package services

import (
	"context"
	"time"
)

// queryTimeout bounds every database operation. The handlers hand in the
// request context, so a dropped client also cancels the query.
const queryTimeout = 5 * time.Second

func scoped(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, queryTimeout)
}
