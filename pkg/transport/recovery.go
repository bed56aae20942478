package transport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rhuss/llmhub/pkg/api"
)

// Recovery returns middleware that converts a panic in the handler into a
// server error. The server keeps accepting requests afterwards.
func Recovery() Middleware {
	return func(next Chatter) Chatter {
		return ChatterFunc(func(ctx context.Context, req *api.ChatRequest) (resp *api.ChatResponse, retErr error) {
			defer func() {
				if r := recover(); r != nil {
					slog.ErrorContext(ctx, "panic in chat handler",
						"request_id", RequestIDFromContext(ctx),
						"panic", fmt.Sprint(r),
					)
					resp = nil
					retErr = api.NewServerError(fmt.Sprintf("internal server error: %v", r))
				}
			}()
			return next.Chat(ctx, req)
		})
	}
}
