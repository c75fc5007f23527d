// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate/statistics queries over the
// proposals table: status totals and grouped breakdowns for dashboards, plus
// the count/max(updated_at) pair used for conditional responses (ETag
// generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

// GroupCount is one (group, status) cell of a grouped breakdown.
type GroupCount struct {
	Key    string                `gorm:"column:grp"`
	Status domain.ProposalStatus `gorm:"column:status"`
	Count  int64                 `gorm:"column:cnt"`
}

// StatusCounts returns the number of proposals per status. Statuses with no
// rows are absent from the map.
func StatusCounts(ctx context.Context, db *gorm.DB) (map[domain.ProposalStatus]int64, error) {
	var rows []struct {
		Status domain.ProposalStatus `gorm:"column:status"`
		Count  int64                 `gorm:"column:cnt"`
	}
	err := db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.ProposalStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Count
	}
	return out, nil
}

func groupedCounts(ctx context.Context, db *gorm.DB, keyExpr string, joins ...string) ([]GroupCount, error) {
	q := db.WithContext(ctx).Model(&domain.Proposal{})
	for _, j := range joins {
		q = q.Joins(j)
	}
	var out []GroupCount
	err := q.
		Select(keyExpr + " AS grp, proposals.status AS status, COUNT(*) AS cnt").
		Group(keyExpr + ", proposals.status").
		Order(keyExpr + " asc").
		Scan(&out).Error
	return out, err
}

// CountsByStation groups proposal counts by station name.
func CountsByStation(ctx context.Context, db *gorm.DB) ([]GroupCount, error) {
	return groupedCounts(ctx, db, "st.name",
		"JOIN stations st ON st.id = proposals.station_id")
}

// CountsByArtist groups proposal counts by owning artist name. A song with
// several owners counts once for each of them.
func CountsByArtist(ctx context.Context, db *gorm.DB) ([]GroupCount, error) {
	return groupedCounts(ctx, db, "a.name",
		"JOIN song_artists sa ON sa.song_id = proposals.song_id",
		"JOIN artists a ON a.id = sa.artist_id")
}

// CountsByGenre groups proposal counts by song genre, as stored.
func CountsByGenre(ctx context.Context, db *gorm.DB) ([]GroupCount, error) {
	return groupedCounts(ctx, db, "s.genre",
		"JOIN songs s ON s.id = proposals.song_id")
}

// CountsByLanguage groups proposal counts by song language, as stored.
func CountsByLanguage(ctx context.Context, db *gorm.DB) ([]GroupCount, error) {
	return groupedCounts(ctx, db, "s.language",
		"JOIN songs s ON s.id = proposals.song_id")
}

// DecadeCount is one (decade, status) cell. Decade is the first year of the
// decade (1990) or 0 when the release year is unknown.
type DecadeCount struct {
	Decade int                   `gorm:"column:decade"`
	Status domain.ProposalStatus `gorm:"column:status"`
	Count  int64                 `gorm:"column:cnt"`
}

// CountsByDecade groups proposal counts by the song's release decade.
func CountsByDecade(ctx context.Context, db *gorm.DB) ([]DecadeCount, error) {
	const expr = "(s.release_year / 10) * 10"
	var out []DecadeCount
	err := db.WithContext(ctx).
		Model(&domain.Proposal{}).
		Joins("JOIN songs s ON s.id = proposals.song_id").
		Select(expr + " AS decade, proposals.status AS status, COUNT(*) AS cnt").
		Group(expr + ", proposals.status").
		Order("decade asc").
		Scan(&out).Error
	return out, err
}

// ProposalsStats returns aggregate metadata for a station's proposals: the
// total number of rows and the maximum UpdatedAt timestamp among those rows.
//
// It executes two lightweight queries scoped to stationID. When the station
// has no proposals, the returned count is 0 and maxUpdatedAt is nil.
func ProposalsStats(ctx context.Context, db *gorm.DB, stationID int64) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Proposal{}).Where("station_id = ?", stationID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
