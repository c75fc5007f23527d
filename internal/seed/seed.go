// Package seed loads the reference catalog (agents, artists, songs and
// stations) from a YAML file into the database. Catalog entities are owned by
// other systems; the seed gives a standalone deployment something to propose
// against.
//
// Applying a catalog is idempotent: rows are upserted by id and song
// ownership is replaced with the listed artists.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

// Catalog models the seed file.
type Catalog struct {
	Agents []struct {
		ID    int64  `yaml:"id"`
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"agents"`
	Artists []struct {
		ID      int64  `yaml:"id"`
		Name    string `yaml:"name"`
		Email   string `yaml:"email"`
		AgentID *int64 `yaml:"agent_id"`
	} `yaml:"artists"`
	Songs []struct {
		ID          int64   `yaml:"id"`
		Title       string  `yaml:"title"`
		Genre       string  `yaml:"genre"`
		Language    string  `yaml:"language"`
		ReleaseYear int     `yaml:"release_year"`
		Duration    int     `yaml:"duration"`
		CoverPath   string  `yaml:"cover_path"`
		Artists     []int64 `yaml:"artists"`
	} `yaml:"songs"`
	Stations []struct {
		ID     int64  `yaml:"id"`
		Name   string `yaml:"name"`
		Email  string `yaml:"email"`
		Status string `yaml:"status"`
	} `yaml:"stations"`
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("seed file %s not found", path)
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates a catalog. Unknown fields are rejected.
func FromYAML(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks ids and cross references.
func (c *Catalog) Validate() error {
	agents := map[int64]bool{}
	for _, a := range c.Agents {
		if a.ID <= 0 || strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("agent %d: id and name are required", a.ID)
		}
		if agents[a.ID] {
			return fmt.Errorf("agent %d defined twice", a.ID)
		}
		agents[a.ID] = true
	}
	artists := map[int64]bool{}
	for _, a := range c.Artists {
		if a.ID <= 0 || strings.TrimSpace(a.Name) == "" {
			return fmt.Errorf("artist %d: id and name are required", a.ID)
		}
		if artists[a.ID] {
			return fmt.Errorf("artist %d defined twice", a.ID)
		}
		if a.AgentID != nil && !agents[*a.AgentID] {
			return fmt.Errorf("artist %d references unknown agent %d", a.ID, *a.AgentID)
		}
		artists[a.ID] = true
	}
	songs := map[int64]bool{}
	for _, s := range c.Songs {
		if s.ID <= 0 || strings.TrimSpace(s.Title) == "" {
			return fmt.Errorf("song %d: id and title are required", s.ID)
		}
		if songs[s.ID] {
			return fmt.Errorf("song %d defined twice", s.ID)
		}
		if len(s.Artists) == 0 {
			return fmt.Errorf("song %d has no artists", s.ID)
		}
		for _, id := range s.Artists {
			if !artists[id] {
				return fmt.Errorf("song %d references unknown artist %d", s.ID, id)
			}
		}
		songs[s.ID] = true
	}
	stations := map[int64]bool{}
	for _, st := range c.Stations {
		if st.ID <= 0 || strings.TrimSpace(st.Name) == "" {
			return fmt.Errorf("station %d: id and name are required", st.ID)
		}
		if stations[st.ID] {
			return fmt.Errorf("station %d defined twice", st.ID)
		}
		switch st.Status {
		case "", domain.StationActive, domain.StationInactive:
		default:
			return fmt.Errorf("station %d: status must be %q or %q", st.ID, domain.StationActive, domain.StationInactive)
		}
		stations[st.ID] = true
	}
	return nil
}

// Apply upserts the catalog in one transaction.
func Apply(ctx context.Context, db *gorm.DB, c *Catalog) error {
	upsert := clause.OnConflict{UpdateAll: true}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range c.Agents {
			row := domain.Agent{ID: a.ID, Name: a.Name, Email: a.Email}
			if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("agent %d: %w", a.ID, err)
			}
		}
		for _, a := range c.Artists {
			row := domain.Artist{ID: a.ID, Name: a.Name, Email: a.Email, AgentID: a.AgentID}
			if err := tx.Omit(clause.Associations).Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("artist %d: %w", a.ID, err)
			}
		}
		for _, st := range c.Stations {
			status := st.Status
			if status == "" {
				status = domain.StationActive
			}
			row := domain.Station{ID: st.ID, Name: st.Name, Email: st.Email, Status: status}
			if err := tx.Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("station %d: %w", st.ID, err)
			}
		}
		for _, s := range c.Songs {
			row := domain.Song{
				ID:          s.ID,
				Title:       s.Title,
				Genre:       s.Genre,
				Language:    s.Language,
				ReleaseYear: s.ReleaseYear,
				Duration:    s.Duration,
				CoverPath:   s.CoverPath,
			}
			if err := tx.Omit(clause.Associations).Clauses(upsert).Create(&row).Error; err != nil {
				return fmt.Errorf("song %d: %w", s.ID, err)
			}
			owners := make([]domain.Artist, 0, len(s.Artists))
			for _, id := range s.Artists {
				owners = append(owners, domain.Artist{ID: id})
			}
			if err := tx.Model(&row).Omit("Artists.*").Association("Artists").Replace(owners); err != nil {
				return fmt.Errorf("song %d owners: %w", s.ID, err)
			}
		}
		return nil
	})
}

// LoadAndApply is Load followed by Apply. It returns the number of songs and
// stations seeded.
func LoadAndApply(ctx context.Context, db *gorm.DB, path string) (songs, stations int, err error) {
	c, err := Load(path)
	if err != nil {
		return 0, 0, err
	}
	if err := Apply(ctx, db, c); err != nil {
		return 0, 0, err
	}
	return len(c.Songs), len(c.Stations), nil
}
