package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/repo"
)

var (
	admin   = domain.Actor{ID: 100, Role: domain.RoleAdmin}
	nova    = domain.Actor{ID: 1, Role: domain.RoleArtist}
	orbit   = domain.Actor{ID: 2, Role: domain.RoleArtist}
	ann     = domain.Actor{ID: 1, Role: domain.RoleAgent}
	radio5  = domain.Actor{ID: 5, Role: domain.RoleStation}
	fixedAt = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
)

// newSvcDB opens a private in-memory database with the full schema and this
// catalog:
//
//	agent 1 (Ann) manages artist 1 (Nova); artist 2 (Orbit) has no agent.
//	song 10 (pop, English, 1994) and song 20 (Pop, english, 2003) owned by Nova.
//	song 30 (Rock, Greek, 2011) owned by Orbit.
//	stations 5, 6, 7.
func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	agentID := int64(1)
	a1 := domain.Artist{ID: 1, Name: "Nova", Email: "nova@artists.test", AgentID: &agentID}
	a2 := domain.Artist{ID: 2, Name: "Orbit", Email: "orbit@artists.test"}
	seed := []any{
		&domain.Agent{ID: 1, Name: "Ann", Email: "ann@agency.test"},
		&a1,
		&a2,
		&domain.Song{ID: 10, Title: "Great Track", Genre: "pop", Language: "English", ReleaseYear: 1994, Artists: []domain.Artist{a1}},
		&domain.Song{ID: 20, Title: "Second Wind", Genre: "Pop", Language: "english", ReleaseYear: 2003, Artists: []domain.Artist{a1}},
		&domain.Song{ID: 30, Title: "Low Orbit", Genre: "Rock", Language: "Greek", ReleaseYear: 2011, Artists: []domain.Artist{a2}},
		&domain.Station{ID: 5, Name: "Radio Five", Email: "five@radio.test", Status: domain.StationActive},
		&domain.Station{ID: 6, Name: "Radio Six", Email: "six@radio.test", Status: domain.StationActive},
		&domain.Station{ID: 7, Name: "Radio Seven", Email: "seven@radio.test", Status: domain.StationActive},
	}
	for _, v := range seed {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}
	return db
}

func countProposals(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&domain.Proposal{}).Count(&n).Error; err != nil {
		t.Fatalf("count proposals: %v", err)
	}
	return n
}

// recordingDispatcher keeps every event and optionally fails.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ev Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
	return d.err
}

func (d *recordingDispatcher) byType(tp EventType) []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []Event
	for _, ev := range d.events {
		if ev.Type == tp {
			out = append(out, ev)
		}
	}
	return out
}

// memCache is an in-process StatsCache.
type memCache struct {
	mu            sync.Mutex
	gen           int64
	data          map[string][]byte
	gets, sets    int
	invalidations int
	failGet       bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet {
		return 0, false, errors.New("cache down")
	}
	b, ok := c.data[fmt.Sprintf("%d:%s", c.gen, key)]
	if !ok {
		return c.gen, false, nil
	}
	return c.gen, true, json.Unmarshal(b, dst)
}

func (c *memCache) Set(_ context.Context, gen int64, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[fmt.Sprintf("%d:%s", gen, key)] = b
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	c.gen++
	return nil
}
