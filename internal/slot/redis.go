package slot

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Redis stores the value under a single key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis creates a slot that stores its value at key.
func NewRedis(client *redis.Client, key string) *Redis {
	if client == nil {
		panic("slot.NewRedis: client is nil")
	}
	return &Redis{client: client, key: key}
}

// ParseRedisOptions accepts either a redis:// URL or a connection string of
// the form "host:port,password=secret,ssl=true".
func ParseRedisOptions(conn string) (*redis.Options, error) {
	conn = strings.TrimSpace(conn)
	if conn == "" {
		return nil, fmt.Errorf("redis connection string is empty")
	}

	opts, err := redis.ParseURL(conn)
	if err == nil {
		return opts, nil
	}
	if strings.Contains(conn, "://") {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	parts := strings.Split(conn, ",")
	opts = &redis.Options{Addr: strings.TrimSpace(parts[0])}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(kv[0])) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.EqualFold(strings.TrimSpace(kv[1]), "true") {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts, nil
}

// Load fetches the key. It returns nil data if the key doesn't exist.
func (r *Redis) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Save sets the key without expiry.
func (r *Redis) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
