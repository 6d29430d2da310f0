package slot

import (
	"context"
	"fmt"

	"github.com/amonks/kanban/board"
	"github.com/amonks/kanban/internal/config"
	"github.com/redis/go-redis/v9"
)

// Open builds the slot selected by cfg. The returned close function
// releases any connection the slot holds and is always non-nil.
func Open(ctx context.Context, cfg config.Storage) (board.Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case "", config.BackendFile:
		return NewFile(cfg.Path), noop, nil

	case config.BackendSQLite:
		s, err := OpenSQLite(ctx, cfg.Path, cfg.Key)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil

	case config.BackendRedis:
		opts, err := ParseRedisOptions(cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
		}
		return NewRedis(client, cfg.Key), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
