package middleware

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/queries"
)

// Observer receives the outcome of every bus message, e.g. to feed metrics.
type Observer interface {
	ObserveMessage(kind, key string, err error, d time.Duration)
}

func CommandLogging(logger *slog.Logger, obs Observer) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := next.Dispatch(ctx, cmd)
			report(ctx, logger, obs, "command", cmd.Key(), err, time.Since(start))
			return res, err
		})
	}
}

func QueryLogging(logger *slog.Logger, obs Observer) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := next.Ask(ctx, q)
			report(ctx, logger, obs, "query", q.Key(), err, time.Since(start))
			return res, err
		})
	}
}

func report(ctx context.Context, logger *slog.Logger, obs Observer, kind, key string, err error, d time.Duration) {
	if obs != nil {
		obs.ObserveMessage(kind, key, err, d)
	}
	if logger == nil {
		return
	}
	if err != nil {
		logger.WarnContext(ctx, kind+" failed", "key", key, "duration", d, "error", err)
		return
	}
	logger.DebugContext(ctx, kind+" handled", "key", key, "duration", d)
}
