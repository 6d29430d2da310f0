package slot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/amonks/kanban/internal/config"
)

func TestOpen(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.Storage
	}{
		{name: "file", cfg: config.Storage{Backend: config.BackendFile, Path: filepath.Join(dir, "boards.json"), Key: "boards"}},
		{name: "sqlite", cfg: config.Storage{Backend: config.BackendSQLite, Path: filepath.Join(dir, "kanban.db"), Key: "boards"}},
		{name: "redis", cfg: config.Storage{Backend: config.BackendRedis, RedisURL: "redis://" + mr.Addr(), Key: "boards"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, closeSlot, err := Open(ctx, tt.cfg)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer closeSlot()

			if err := s.Save(ctx, []byte(`[]`)); err != nil {
				t.Fatalf("save: %v", err)
			}
			data, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if string(data) != `[]` {
				t.Fatalf("unexpected data: %q", data)
			}
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	tests := []struct {
		name string
		cfg  config.Storage
	}{
		{name: "unknown backend", cfg: config.Storage{Backend: "floppy"}},
		{name: "redis unreachable", cfg: config.Storage{Backend: config.BackendRedis, RedisURL: addr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, closeSlot, err := Open(context.Background(), tt.cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if closeSlot == nil {
				t.Fatal("expected non-nil close func")
			}
		})
	}
}
