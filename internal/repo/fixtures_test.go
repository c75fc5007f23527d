package repo

import (
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

// newCatalogDB migrates the full schema and seeds a small catalog:
//
//	agent 1 manages artist 1 (Nova); artist 2 (Orbit) has no agent.
//	song 10 (pop, English, 1994) owned by Nova.
//	song 20 (Rock, greek, 2003) owned by Nova and Orbit.
//	song 30 (Pop, english, 2011) owned by Orbit.
//	stations 5, 6, 7.
func newCatalogDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	agentID := int64(1)
	agent := domain.Agent{ID: agentID, Name: "Ann Agent", Email: "ann@agency.test"}
	nova := domain.Artist{ID: 1, Name: "Nova", Email: "nova@artists.test", AgentID: &agentID}
	orbit := domain.Artist{ID: 2, Name: "Orbit", Email: "orbit@artists.test"}
	mustCreate(t, db, &agent)
	mustCreate(t, db, &nova)
	mustCreate(t, db, &orbit)

	mustCreate(t, db, &domain.Song{ID: 10, Title: "Great Track", Genre: "pop", Language: "English", ReleaseYear: 1994, Duration: 215, Artists: []domain.Artist{nova}})
	mustCreate(t, db, &domain.Song{ID: 20, Title: "Second Wind", Genre: "Rock", Language: "greek", ReleaseYear: 2003, Duration: 190, Artists: []domain.Artist{nova, orbit}})
	mustCreate(t, db, &domain.Song{ID: 30, Title: "Low Orbit", Genre: "Pop", Language: "english", ReleaseYear: 2011, Duration: 240, Artists: []domain.Artist{orbit}})

	for _, st := range []domain.Station{
		{ID: 5, Name: "Radio Five", Email: "five@radio.test", Status: domain.StationActive},
		{ID: 6, Name: "Radio Six", Email: "six@radio.test", Status: domain.StationActive},
		{ID: 7, Name: "Radio Seven", Email: "seven@radio.test", Status: domain.StationInactive},
	} {
		st := st
		mustCreate(t, db, &st)
	}
	return db
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}
