// Package services – StatsService
//
// This file implements the read-only statistics views over the proposal
// store: status totals, grouped breakdowns for dashboards, and the simple
// filter-and-return listings. Nothing here mutates state.
//
// Results of the two aggregate views may be cached through StatsCache; the
// ProposalService invalidates the cache after every committed mutation, and
// any cache error falls back to a direct store read.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/repo"
)

const statsTracer = "services/StatsService"

// StatsCache stores derived statistics between mutations.
type StatsCache interface {
	// Get decodes the cached value for key into dst and reports whether it
	// was present, along with the cache generation it looked in.
	Get(ctx context.Context, key string, dst any) (gen int64, hit bool, err error)
	// Set stores v under generation gen. Values written under a generation
	// that has since been invalidated are never returned by Get.
	Set(ctx context.Context, gen int64, key string, v any) error
	// Invalidate drops every cached value.
	Invalidate(ctx context.Context) error
}

// Summary is the status totals view.
type Summary struct {
	TotalPending   int64   `json:"totalPending"`
	TotalAccepted  int64   `json:"totalAccepted"`
	TotalRejected  int64   `json:"totalRejected"`
	Total          int64   `json:"total"`
	AcceptanceRate float64 `json:"acceptanceRate"`
}

// StatusTally is one row of a grouped breakdown.
type StatusTally struct {
	Key      string `json:"key"`
	Pending  int64  `json:"pending"`
	Accepted int64  `json:"accepted"`
	Rejected int64  `json:"rejected"`
	Total    int64  `json:"total"`
}

func (t *StatusTally) add(s domain.ProposalStatus, n int64) {
	switch s {
	case domain.StatusPending:
		t.Pending += n
	case domain.StatusAccepted:
		t.Accepted += n
	case domain.StatusRejected:
		t.Rejected += n
	}
	t.Total += n
}

// Breakdown groups status counts by station, artist, genre, language and
// release decade.
type Breakdown struct {
	ByStation  []StatusTally `json:"byStation"`
	ByArtist   []StatusTally `json:"byArtist"`
	ByGenre    []StatusTally `json:"byGenre"`
	ByLanguage []StatusTally `json:"byLanguage"`
	ByDecade   []StatusTally `json:"byDecade"`
}

// StatsService computes statistics on demand.
type StatsService struct {
	DB *gorm.DB

	// Cache is optional.
	Cache StatsCache

	// LabelLocale drives genre/language canonicalisation; English if unset.
	LabelLocale language.Tag
}

// Summary returns totals by status. Total is always the sum of the three
// status totals. AcceptanceRate is accepted / (accepted + rejected), 0 when
// nothing has been resolved yet.
func (s *StatsService) Summary(ctx context.Context) (*Summary, error) {
	ctx, span := otel.Tracer(statsTracer).Start(ctx, "Summary")
	defer span.End()

	var out Summary
	err := s.cached(ctx, "summary", &out, func() error {
		counts, err := repo.StatusCounts(ctx, s.DB)
		if err != nil {
			return err
		}
		out = Summary{
			TotalPending:  counts[domain.StatusPending],
			TotalAccepted: counts[domain.StatusAccepted],
			TotalRejected: counts[domain.StatusRejected],
		}
		out.Total = out.TotalPending + out.TotalAccepted + out.TotalRejected
		if resolved := out.TotalAccepted + out.TotalRejected; resolved > 0 {
			out.AcceptanceRate = float64(out.TotalAccepted) / float64(resolved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Breakdown returns grouped status counts. Genre and language labels are
// title-cased so "pop" and "Pop" land in the same group.
func (s *StatsService) Breakdown(ctx context.Context) (*Breakdown, error) {
	ctx, span := otel.Tracer(statsTracer).Start(ctx, "Breakdown")
	defer span.End()

	var out Breakdown
	err := s.cached(ctx, "breakdown", &out, func() error {
		byStation, err := repo.CountsByStation(ctx, s.DB)
		if err != nil {
			return err
		}
		byArtist, err := repo.CountsByArtist(ctx, s.DB)
		if err != nil {
			return err
		}
		byGenre, err := repo.CountsByGenre(ctx, s.DB)
		if err != nil {
			return err
		}
		byLanguage, err := repo.CountsByLanguage(ctx, s.DB)
		if err != nil {
			return err
		}
		byDecade, err := repo.CountsByDecade(ctx, s.DB)
		if err != nil {
			return err
		}

		caser := cases.Title(s.locale())
		canon := func(k string) string {
			k = strings.TrimSpace(k)
			if k == "" {
				return "Unknown"
			}
			return caser.String(strings.ToLower(k))
		}
		same := func(k string) string { return k }

		out = Breakdown{
			ByStation:  tally(byStation, same),
			ByArtist:   tally(byArtist, same),
			ByGenre:    tally(byGenre, canon),
			ByLanguage: tally(byLanguage, canon),
			ByDecade:   tallyDecades(byDecade),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptedProposalsForStation returns the accepted proposals of stationID,
// an empty slice when there are none.
func (s *StatsService) AcceptedProposalsForStation(ctx context.Context, stationID int64) ([]domain.Proposal, error) {
	ctx, span := otel.Tracer(statsTracer).Start(ctx, "AcceptedProposalsForStation",
		trace.WithAttributes(attribute.Int64("station.id", stationID)),
	)
	defer span.End()

	if stationID <= 0 {
		return nil, fmt.Errorf("%w: radioStationId must be positive", ErrValidation)
	}
	return nonNil(repo.ListAcceptedByStation(ctx, s.DB, stationID))
}

// ByLanguage returns the proposals whose song is in lang (case-insensitive).
func (s *StatsService) ByLanguage(ctx context.Context, lang string) ([]domain.Proposal, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil, fmt.Errorf("%w: language is required", ErrValidation)
	}
	return nonNil(repo.ListProposalsByLanguage(ctx, s.DB, lang))
}

// ByGenre returns the proposals whose song has the given genre
// (case-insensitive).
func (s *StatsService) ByGenre(ctx context.Context, genre string) ([]domain.Proposal, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, fmt.Errorf("%w: genre is required", ErrValidation)
	}
	return nonNil(repo.ListProposalsByGenre(ctx, s.DB, genre))
}

// cached serves key from the cache when possible, otherwise runs load (which
// fills dst) and stores the result under the generation read before loading.
// Cache failures are logged and ignored.
func (s *StatsService) cached(ctx context.Context, key string, dst any, load func() error) error {
	if s.Cache == nil {
		return load()
	}
	gen, hit, err := s.Cache.Get(ctx, key, dst)
	if err == nil && hit {
		return nil
	}
	if err != nil {
		ctxLogger(ctx).Warn().Err(err).Str("key", key).Msg("stats cache read failed")
	}
	if err := load(); err != nil {
		return err
	}
	if err == nil {
		if err := s.Cache.Set(ctx, gen, key, dst); err != nil {
			ctxLogger(ctx).Warn().Err(err).Str("key", key).Msg("stats cache write failed")
		}
	}
	return nil
}

func (s *StatsService) locale() language.Tag {
	if s.LabelLocale == language.Und {
		return language.English
	}
	return s.LabelLocale
}

// tally folds (key, status, count) cells into one row per canonical key,
// ordered by key.
func tally(cells []repo.GroupCount, canon func(string) string) []StatusTally {
	idx := make(map[string]int)
	out := make([]StatusTally, 0, len(cells))
	for _, c := range cells {
		k := canon(c.Key)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, StatusTally{Key: k})
		}
		out[i].add(c.Status, c.Count)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func tallyDecades(cells []repo.DecadeCount) []StatusTally {
	conv := make([]repo.GroupCount, 0, len(cells))
	for _, c := range cells {
		k := "Unknown"
		if c.Decade > 0 {
			k = fmt.Sprintf("%ds", c.Decade)
		}
		conv = append(conv, repo.GroupCount{Key: k, Status: c.Status, Count: c.Count})
	}
	return tally(conv, func(k string) string { return k })
}
