// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Proposal
// model.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving business rules (ownership, permissions,
// notifications) to the services package.
//
// Error semantics:
//   - A second proposal for the same (song_id, station_id) violates the
//     unique index and is returned as ErrDuplicate. The check lives in the
//     database so two concurrent inserts cannot both succeed.
//   - UpdateProposalStatus only moves Pending rows; a terminal row yields
//     ErrInvalidTransition and a missing row ErrNotFound.
//   - Other DB errors are propagated as-is.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

// withRefs preloads the song (with owners and their agents) and the station
// embedded in every proposal returned to callers. Soft-deleted stations are
// still resolved so historical proposals keep their station name.
func withRefs(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Song.Artists.Agent").
		Preload("Station", func(tx *gorm.DB) *gorm.DB { return tx.Unscoped() })
}

// CreateProposal inserts p. ID and ProposalDate are filled when empty and
// Status is forced to Pending. A duplicate (song_id, station_id) pair returns
// ErrDuplicate.
func CreateProposal(ctx context.Context, db *gorm.DB, p *domain.Proposal) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.ProposalDate.IsZero() {
		p.ProposalDate = time.Now().UTC()
	}
	p.Status = domain.StatusPending
	p.ResolvedAt = nil

	if err := db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		if IsUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetProposal fetches the proposal for (songID, stationID) with its song and
// station. Returns ErrNotFound if none exists.
func GetProposal(ctx context.Context, db *gorm.DB, songID, stationID int64) (*domain.Proposal, error) {
	var p domain.Proposal
	err := withRefs(db.WithContext(ctx)).
		Where("song_id = ? AND station_id = ?", songID, stationID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProposalsByStation returns a station's proposals, newest first.
// A limit <= 0 returns every row from offset on.
func ListProposalsByStation(ctx context.Context, db *gorm.DB, stationID int64, offset, limit int) ([]domain.Proposal, error) {
	q := withRefs(db.WithContext(ctx)).
		Where("station_id = ?", stationID).
		Order("proposal_date desc").
		Order("id asc").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Proposal
	err := q.Find(&out).Error
	return out, err
}

// CountProposalsByStation returns the number of proposals addressed to a
// station (pagination support).
func CountProposalsByStation(ctx context.Context, db *gorm.DB, stationID int64) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Where("station_id = ?", stationID).
		Count(&total).Error
	return total, err
}

// ListProposalsByArtist returns every proposal for songs owned by artistID,
// whoever submitted them.
func ListProposalsByArtist(ctx context.Context, db *gorm.DB, artistID int64) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := withRefs(db.WithContext(ctx)).
		Joins("JOIN song_artists sa ON sa.song_id = proposals.song_id").
		Where("sa.artist_id = ?", artistID).
		Order("proposals.proposal_date desc").
		Find(&out).Error
	return out, err
}

// ListProposalsByStatus returns every proposal in the given status.
func ListProposalsByStatus(ctx context.Context, db *gorm.DB, status domain.ProposalStatus) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := withRefs(db.WithContext(ctx)).
		Where("status = ?", status).
		Order("proposal_date desc").
		Find(&out).Error
	return out, err
}

// ListAcceptedByStation returns the accepted proposals of a station.
func ListAcceptedByStation(ctx context.Context, db *gorm.DB, stationID int64) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := withRefs(db.WithContext(ctx)).
		Where("station_id = ? AND status = ?", stationID, domain.StatusAccepted).
		Order("resolved_at desc").
		Find(&out).Error
	return out, err
}

// listProposalsBySongAttr filters proposals on a song column ("language" or
// "genre"), matching case-insensitively.
func listProposalsBySongAttr(ctx context.Context, db *gorm.DB, column, value string) ([]domain.Proposal, error) {
	var out []domain.Proposal
	err := withRefs(db.WithContext(ctx)).
		Joins("JOIN songs s ON s.id = proposals.song_id").
		Where("LOWER(s."+column+") = LOWER(?)", value).
		Order("proposals.proposal_date desc").
		Find(&out).Error
	return out, err
}

// ListProposalsByLanguage returns proposals whose song is in language lang.
func ListProposalsByLanguage(ctx context.Context, db *gorm.DB, lang string) ([]domain.Proposal, error) {
	return listProposalsBySongAttr(ctx, db, "language", lang)
}

// ListProposalsByGenre returns proposals whose song has the given genre.
func ListProposalsByGenre(ctx context.Context, db *gorm.DB, genre string) ([]domain.Proposal, error) {
	return listProposalsBySongAttr(ctx, db, "genre", genre)
}

// UpdateProposalStatus moves the (songID, stationID) proposal from Pending to
// next and returns the updated row.
//
// The update is conditional on status = Pending, so a concurrent resolution
// cannot be overwritten. When no row changes, the stored row is inspected to
// tell ErrNotFound from ErrInvalidTransition.
func UpdateProposalStatus(ctx context.Context, db *gorm.DB, songID, stationID int64, next domain.ProposalStatus, at time.Time) (*domain.Proposal, error) {
	if !domain.StatusPending.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	res := db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Where("song_id = ? AND station_id = ? AND status = ?", songID, stationID, domain.StatusPending).
		Updates(map[string]any{
			"status":      next,
			"resolved_at": at,
			"updated_at":  at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := GetProposal(ctx, db, songID, stationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, ErrInvalidTransition
	}
	return GetProposal(ctx, db, songID, stationID)
}

// CountProposalsForSong returns the number of proposals for a song across all
// stations, in any status.
func CountProposalsForSong(ctx context.Context, db *gorm.DB, songID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Where("song_id = ?", songID).
		Count(&n).Error
	return n, err
}

// CountAcceptedByStation returns the number of accepted proposals for a
// station.
func CountAcceptedByStation(ctx context.Context, db *gorm.DB, stationID int64) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Where("station_id = ? AND status = ?", stationID, domain.StatusAccepted).
		Count(&n).Error
	return n, err
}
