package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/tbourn/go-proposal-backend/internal/config"
	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/notify"
)

func TestNewDeps_LogOnlyByDefault(t *testing.T) {
	deps, closeFn, err := newDeps(context.Background(), config.Config{}, nil)
	if err != nil {
		t.Fatalf("newDeps: %v", err)
	}
	defer closeFn()

	if deps.Cache != nil {
		t.Fatalf("no cache expected without REDIS_URL")
	}
	m, ok := deps.Dispatcher.(notify.Multi)
	if !ok || len(m) != 1 {
		t.Fatalf("expected only the log dispatcher, got %#v", deps.Dispatcher)
	}
}

func TestNewDeps_RedisAndEmail(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Config{
		RedisURL:      "redis://" + mr.Addr(),
		StatsCacheTTL: time.Minute,
		EventsChannel: "test:events",
		ResendAPIKey:  "re_test",
		MailFrom:      "Proposals <proposals@example.com>",
	}
	deps, closeFn, err := newDeps(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("newDeps: %v", err)
	}
	defer closeFn()

	if deps.Cache == nil {
		t.Fatalf("expected redis stats cache")
	}
	m, ok := deps.Dispatcher.(notify.Multi)
	if !ok || len(m) != 3 {
		t.Fatalf("expected log + redis + e-mail dispatchers, got %#v", deps.Dispatcher)
	}
	if _, ok := m[1].(*notify.RedisPublisher); !ok {
		t.Fatalf("second dispatcher = %T; want *notify.RedisPublisher", m[1])
	}
	if _, ok := m[2].(*notify.EmailDispatcher); !ok {
		t.Fatalf("third dispatcher = %T; want *notify.EmailDispatcher", m[2])
	}
}

func TestNewDeps_UnreachableRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, _, err := newDeps(context.Background(), config.Config{RedisURL: "redis://" + addr}, nil); err == nil {
		t.Fatalf("expected error for unreachable redis")
	}
}

func TestOpenDatabase_MigratesAndSeeds(t *testing.T) {
	dir := t.TempDir()
	seedPath := filepath.Join(dir, "catalog.yaml")
	catalog := `
artists:
  - id: 1
    name: Nova
songs:
  - id: 10
    title: Great Track
    genre: Pop
    language: English
    release_year: 1994
    artists: [1]
stations:
  - id: 5
    name: Radio Five
`
	if err := os.WriteFile(seedPath, []byte(catalog), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	db, err := openDatabase(context.Background(), config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(dir, "app.db"),
		SeedPath: seedPath,
	})
	if err != nil {
		t.Fatalf("openDatabase: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	var n int64
	if err := db.Model(&domain.Station{}).Count(&n).Error; err != nil || n != 1 {
		t.Fatalf("stations = %d (%v)", n, err)
	}
}
