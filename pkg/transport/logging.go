package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/rhuss/llmhub/pkg/api"
)

// Logging returns middleware that emits one structured log entry per chat
// request with its request ID, provider, instruction set, duration, and
// error if any.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Chatter) Chatter {
		return ChatterFunc(func(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
			start := time.Now()

			resp, err := next.Chat(ctx, req)

			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("provider_id", req.ProviderID),
				slog.String("instruction_id", req.InstructionID),
				slog.Duration("duration", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "chat failed", attrs...)
			} else {
				logger.LogAttrs(ctx, slog.LevelInfo, "chat completed", attrs...)
			}
			return resp, err
		})
	}
}
