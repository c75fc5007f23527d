// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read access to the catalog a proposal
// references (artists, songs, stations) and the station song library.
//
// Catalog rows are owned by other systems; the workflow only checks that
// they exist, resolves ownership and reads contacts for notifications.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

// GetArtist loads an artist with its agent. Returns ErrNotFound if missing.
func GetArtist(ctx context.Context, db *gorm.DB, id int64) (*domain.Artist, error) {
	var a domain.Artist
	if err := db.WithContext(ctx).Preload("Agent").First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// GetSong loads a song with its owning artists and their agents.
// Returns ErrNotFound if missing.
func GetSong(ctx context.Context, db *gorm.DB, id int64) (*domain.Song, error) {
	var s domain.Song
	if err := db.WithContext(ctx).Preload("Artists.Agent").First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GetStation loads a registered (non-deleted) station. Returns ErrNotFound if
// missing.
func GetStation(ctx context.Context, db *gorm.DB, id int64) (*domain.Station, error) {
	var st domain.Station
	if err := db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStations returns every registered station ordered by id.
func ListStations(ctx context.Context, db *gorm.DB) ([]domain.Station, error) {
	var out []domain.Station
	err := db.WithContext(ctx).Order("id asc").Find(&out).Error
	return out, err
}

// SongOwnedBy reports whether artistID is one of the song's owners.
func SongOwnedBy(ctx context.Context, db *gorm.DB, songID, artistID int64) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Table("song_artists").
		Where("song_id = ? AND artist_id = ?", songID, artistID).
		Count(&n).Error
	return n > 0, err
}

// AddToStationLibrary records that stationID accepted songID. Re-adding an
// existing entry is a no-op.
func AddToStationLibrary(ctx context.Context, db *gorm.DB, stationID, songID int64, at time.Time) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.StationSong{StationID: stationID, SongID: songID, AcceptedAt: at}).Error
}

// StationLibrary returns the songs a station accepted, newest first.
func StationLibrary(ctx context.Context, db *gorm.DB, stationID int64) ([]domain.Song, error) {
	var out []domain.Song
	err := db.WithContext(ctx).
		Joins("JOIN station_songs ss ON ss.song_id = songs.id").
		Where("ss.station_id = ?", stationID).
		Order("ss.accepted_at desc").
		Preload("Artists").
		Find(&out).Error
	return out, err
}
