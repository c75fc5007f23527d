package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/repo"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

const sample = `
agents:
  - {id: 1, name: Ann, email: ann@agency.test}
artists:
  - {id: 1, name: Nova, email: nova@artists.test, agent_id: 1}
  - {id: 2, name: Orbit}
songs:
  - {id: 10, title: Great Track, genre: pop, language: English, release_year: 1994, artists: [1]}
  - {id: 20, title: Second Wind, genre: rock, language: Greek, release_year: 2003, artists: [1, 2]}
stations:
  - {id: 5, name: Radio Five, email: five@radio.test}
  - {id: 6, name: Radio Six, status: inactive}
`

func TestFromYAML_ValidCatalog(t *testing.T) {
	c, err := FromYAML([]byte(sample))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	if len(c.Agents) != 1 || len(c.Artists) != 2 || len(c.Songs) != 2 || len(c.Stations) != 2 {
		t.Fatalf("unexpected catalog: %+v", c)
	}
	if c.Artists[0].AgentID == nil || *c.Artists[0].AgentID != 1 {
		t.Fatalf("agent_id not parsed: %+v", c.Artists[0])
	}
}

func TestFromYAML_Rejects(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "songz: []",
		"unknown artist": "songs:\n  - {id: 1, title: x, artists: [9]}",
		"no owners":      "artists:\n  - {id: 1, name: a}\nsongs:\n  - {id: 1, title: x}",
		"unknown agent":  "artists:\n  - {id: 1, name: a, agent_id: 3}",
		"dup station":    "stations:\n  - {id: 1, name: a}\n  - {id: 1, name: b}",
		"bad status":     "stations:\n  - {id: 1, name: a, status: paused}",
		"missing name":   "artists:\n  - {id: 1}",
	}
	for name, doc := range cases {
		if _, err := FromYAML([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestFromYAML_EmptyDocument(t *testing.T) {
	c, err := FromYAML(nil)
	if err != nil {
		t.Fatalf("empty document should be a valid empty catalog: %v", err)
	}
	if len(c.Songs) != 0 {
		t.Fatalf("expected empty catalog")
	}
}

func TestApply_IsIdempotent(t *testing.T) {
	db := newSeedDB(t)
	ctx := context.Background()
	c, err := FromYAML([]byte(sample))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := Apply(ctx, db, c); err != nil {
			t.Fatalf("Apply #%d: %v", i+1, err)
		}
	}

	var songs, links, stations int64
	db.Model(&domain.Song{}).Count(&songs)
	db.Table("song_artists").Count(&links)
	db.Model(&domain.Station{}).Count(&stations)
	if songs != 2 || links != 3 || stations != 2 {
		t.Fatalf("unexpected counts songs=%d links=%d stations=%d", songs, links, stations)
	}

	st, err := repo.GetStation(ctx, db, 5)
	if err != nil || st.Status != domain.StationActive {
		t.Fatalf("station 5 should default to active: %v %+v", err, st)
	}
	song, err := repo.GetSong(ctx, db, 20)
	if err != nil || song.ArtistNames() != "Nova, Orbit" {
		t.Fatalf("unexpected owners: %v %+v", err, song)
	}
	owned, _ := repo.SongOwnedBy(ctx, db, 20, 2)
	if !owned {
		t.Fatalf("Orbit should own song 20")
	}
}

func TestLoadAndApply_FileAndMissing(t *testing.T) {
	db := newSeedDB(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	songs, stations, err := LoadAndApply(ctx, db, path)
	if err != nil || songs != 2 || stations != 2 {
		t.Fatalf("LoadAndApply = %d, %d, %v", songs, stations, err)
	}

	_, _, err = LoadAndApply(ctx, db, filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestShippedCatalogIsValid(t *testing.T) {
	c, err := Load(filepath.Join("..", "..", "data", "catalog.yaml"))
	if err != nil {
		t.Fatalf("data/catalog.yaml: %v", err)
	}
	if len(c.Stations) == 0 || len(c.Songs) == 0 {
		t.Fatalf("shipped catalog should not be empty")
	}
}
