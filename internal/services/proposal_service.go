// Package services – ProposalService
//
// This file implements ProposalService, the only component allowed to mutate
// proposals. It validates input, checks that the acting user may propose on
// behalf of the artist (or resolve on behalf of the station), runs existence
// checks and the insert/update in one transaction, and then fires
// notifications. A notification failure never undoes a committed change.
//
// Observability: all public methods are OpenTelemetry-instrumented; committed
// events are counted in proposal_transitions_total.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/repo"
)

const proposalTracer = "services/ProposalService"

// ProposalService implements the proposal workflow use-cases.
type ProposalService struct {
	DB *gorm.DB

	// Dispatcher receives lifecycle events after commit. Nil disables
	// notifications.
	Dispatcher Dispatcher

	// Cache, when set, is invalidated after every committed mutation.
	Cache StatsCache

	// Concurrency bounds the broadcast fan-out. Values below 1 mean
	// sequential.
	Concurrency int

	// Now overrides the clock in tests.
	Now func() time.Time
}

// ProposeInput is a single-station proposal request.
type ProposeInput struct {
	ArtistID    int64
	StationID   int64
	SongID      int64
	Description string
}

// BroadcastInput is a proposal addressed to every registered station.
type BroadcastInput struct {
	ArtistID    int64
	SongID      int64
	Description string
}

// StationFailure is the outcome of one failed station in a broadcast.
type StationFailure struct {
	StationID int64
	Code      string
	Err       error
}

// BroadcastResult aggregates per-station outcomes, each ordered by station id.
type BroadcastResult struct {
	Succeeded []domain.Proposal
	Failed    []StationFailure
}

func (s *ProposalService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Propose creates a Pending proposal of songID to stationID on behalf of
// artistID.
//
// Order of checks:
//  1. ids must be positive and the description non-empty (ErrValidation);
//  2. the actor must be the artist, the artist's agent, or an admin
//     (ErrForbidden);
//  3. artist, song and station must exist (ErrInvalidReference) and the
//     artist must own the song (ErrNotSongOwner);
//  4. the insert fails with ErrDuplicateProposal when the pair already has a
//     proposal in any status.
//
// Steps 3 and 4 run in one transaction. On success the statistics cache is
// invalidated and ProposalCreated is dispatched to the station.
func (s *ProposalService) Propose(ctx context.Context, actor domain.Actor, in ProposeInput) (*domain.Proposal, error) {
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, "Propose",
		trace.WithAttributes(
			attribute.Int64("song.id", in.SongID),
			attribute.Int64("station.id", in.StationID),
			attribute.Int64("artist.id", in.ArtistID),
			attribute.String("actor.role", string(actor.Role)),
		),
	)
	defer span.End()

	in.Description = strings.TrimSpace(in.Description)
	if err := validateProposal(in.ArtistID, in.SongID, in.Description); err != nil {
		return nil, err
	}
	if in.StationID <= 0 {
		return nil, fmt.Errorf("%w: stationId must be positive", ErrValidation)
	}
	if err := preAuthorize(actor, in.ArtistID); err != nil {
		return nil, err
	}

	var created *domain.Proposal
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		song, err := s.checkArtistAndSong(ctx, tx, actor, in.ArtistID, in.SongID)
		if err != nil {
			return err
		}
		station, err := repo.GetStation(ctx, tx, in.StationID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("%w: station %d", ErrInvalidReference, in.StationID)
			}
			return err
		}

		p := &domain.Proposal{
			SongID:       in.SongID,
			StationID:    in.StationID,
			ArtistID:     in.ArtistID,
			ProposerID:   actor.ID,
			ProposerRole: actor.Role,
			Description:  in.Description,
			ProposalDate: s.now(),
		}
		if err := repo.CreateProposal(ctx, tx, p); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return fmt.Errorf("%w: song %d, station %d", ErrDuplicateProposal, in.SongID, in.StationID)
			}
			return err
		}
		p.Song = *song
		p.Station = *station
		created = p
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.committed(ctx, Event{
		Type:       EventProposalCreated,
		Proposal:   *created,
		Recipients: stationContacts(created.Station),
		OccurredAt: created.ProposalDate,
	})
	return created, nil
}

// ProposeToAllStations proposes songID to every station registered at call
// time. Input validation and the artist/song checks run once; a failure there
// fails the whole request. Per-station failures (typically
// ErrDuplicateProposal) are collected and never abort the other stations, so
// len(Succeeded)+len(Failed) equals the number of stations.
func (s *ProposalService) ProposeToAllStations(ctx context.Context, actor domain.Actor, in BroadcastInput) (*BroadcastResult, error) {
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, "ProposeToAllStations",
		trace.WithAttributes(
			attribute.Int64("song.id", in.SongID),
			attribute.Int64("artist.id", in.ArtistID),
		),
	)
	defer span.End()

	in.Description = strings.TrimSpace(in.Description)
	if err := validateProposal(in.ArtistID, in.SongID, in.Description); err != nil {
		return nil, err
	}
	if err := preAuthorize(actor, in.ArtistID); err != nil {
		return nil, err
	}
	if _, err := s.checkArtistAndSong(ctx, s.DB.WithContext(ctx), actor, in.ArtistID, in.SongID); err != nil {
		return nil, err
	}

	stations, err := repo.ListStations(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("stations", len(stations)))

	type outcome struct {
		p   *domain.Proposal
		err error
	}
	outcomes := make([]outcome, len(stations))

	var g errgroup.Group
	limit := s.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, st := range stations {
		g.Go(func() error {
			p, err := s.Propose(ctx, actor, ProposeInput{
				ArtistID:    in.ArtistID,
				StationID:   st.ID,
				SongID:      in.SongID,
				Description: in.Description,
			})
			outcomes[i] = outcome{p: p, err: err}
			return nil
		})
	}
	_ = g.Wait()

	res := &BroadcastResult{
		Succeeded: make([]domain.Proposal, 0, len(stations)),
		Failed:    make([]StationFailure, 0),
	}
	for i, o := range outcomes {
		if o.err != nil {
			res.Failed = append(res.Failed, StationFailure{
				StationID: stations[i].ID,
				Code:      ErrorCode(o.err),
				Err:       o.err,
			})
			continue
		}
		res.Succeeded = append(res.Succeeded, *o.p)
	}
	sort.Slice(res.Succeeded, func(i, j int) bool { return res.Succeeded[i].StationID < res.Succeeded[j].StationID })
	sort.Slice(res.Failed, func(i, j int) bool { return res.Failed[i].StationID < res.Failed[j].StationID })

	span.SetAttributes(
		attribute.Int("succeeded", len(res.Succeeded)),
		attribute.Int("failed", len(res.Failed)),
	)
	return res, nil
}

// Accept moves the proposal to Accepted and adds the song to the station's
// library in the same transaction, then notifies the song's artists and
// agents.
func (s *ProposalService) Accept(ctx context.Context, actor domain.Actor, stationID, songID int64) (*domain.Proposal, error) {
	return s.resolve(ctx, actor, stationID, songID, domain.StatusAccepted)
}

// Reject moves the proposal to Rejected and notifies the song's artists and
// agents.
func (s *ProposalService) Reject(ctx context.Context, actor domain.Actor, stationID, songID int64) (*domain.Proposal, error) {
	return s.resolve(ctx, actor, stationID, songID, domain.StatusRejected)
}

func (s *ProposalService) resolve(ctx context.Context, actor domain.Actor, stationID, songID int64, next domain.ProposalStatus) (*domain.Proposal, error) {
	event := EventProposalAccepted
	if next == domain.StatusRejected {
		event = EventProposalRejected
	}
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, string(event),
		trace.WithAttributes(
			attribute.Int64("song.id", songID),
			attribute.Int64("station.id", stationID),
			attribute.String("actor.role", string(actor.Role)),
		),
	)
	defer span.End()

	if stationID <= 0 || songID <= 0 {
		return nil, fmt.Errorf("%w: radioStationId and songId must be positive", ErrValidation)
	}
	if actor.Role != domain.RoleAdmin && !actor.Is(domain.RoleStation, stationID) {
		return nil, ErrForbidden
	}

	at := s.now()
	var updated *domain.Proposal
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := repo.UpdateProposalStatus(ctx, tx, songID, stationID, next, at)
		if err != nil {
			return mapStoreErr(err, songID, stationID)
		}
		if next == domain.StatusAccepted {
			if err := repo.AddToStationLibrary(ctx, tx, stationID, songID, at); err != nil {
				return err
			}
		}
		updated = p
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.committed(ctx, Event{
		Type:       event,
		Proposal:   *updated,
		Recipients: songContacts(updated.Song),
		OccurredAt: at,
	})
	return updated, nil
}

// Get returns the proposal for (songID, stationID).
func (s *ProposalService) Get(ctx context.Context, songID, stationID int64) (*domain.Proposal, error) {
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, "Get",
		trace.WithAttributes(
			attribute.Int64("song.id", songID),
			attribute.Int64("station.id", stationID),
		),
	)
	defer span.End()

	if songID <= 0 || stationID <= 0 {
		return nil, fmt.Errorf("%w: songId and radioStationId must be positive", ErrValidation)
	}
	p, err := repo.GetProposal(ctx, s.DB, songID, stationID)
	if err != nil {
		return nil, mapStoreErr(err, songID, stationID)
	}
	return p, nil
}

// ListByStation returns a page of a station's proposals (newest first) and
// the total count.
func (s *ProposalService) ListByStation(ctx context.Context, stationID int64, page, pageSize int) ([]domain.Proposal, int64, error) {
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, "ListByStation",
		trace.WithAttributes(
			attribute.Int64("station.id", stationID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if stationID <= 0 {
		return nil, 0, fmt.Errorf("%w: radioStationId must be positive", ErrValidation)
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	total, err := repo.CountProposalsByStation(ctx, s.DB, stationID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Proposal{}, 0, nil
	}
	items, err := repo.ListProposalsByStation(ctx, s.DB, stationID, (page-1)*pageSize, pageSize)
	return items, total, err
}

// ListByArtist returns every proposal for songs owned by artistID.
func (s *ProposalService) ListByArtist(ctx context.Context, artistID int64) ([]domain.Proposal, error) {
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, "ListByArtist",
		trace.WithAttributes(attribute.Int64("artist.id", artistID)),
	)
	defer span.End()

	if artistID <= 0 {
		return nil, fmt.Errorf("%w: artistId must be positive", ErrValidation)
	}
	return nonNil(repo.ListProposalsByArtist(ctx, s.DB, artistID))
}

// ListByStatus returns every proposal in the given status.
func (s *ProposalService) ListByStatus(ctx context.Context, status domain.ProposalStatus) ([]domain.Proposal, error) {
	ctx, span := otel.Tracer(proposalTracer).Start(ctx, "ListByStatus",
		trace.WithAttributes(attribute.String("status", status.String())),
	)
	defer span.End()

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %d", ErrValidation, int(status))
	}
	return nonNil(repo.ListProposalsByStatus(ctx, s.DB, status))
}

// CountForSong returns the number of proposals for songID across all
// stations, in any status.
func (s *ProposalService) CountForSong(ctx context.Context, songID int64) (int64, error) {
	if songID <= 0 {
		return 0, fmt.Errorf("%w: songId must be positive", ErrValidation)
	}
	return repo.CountProposalsForSong(ctx, s.DB, songID)
}

// CountAcceptedByStation returns the number of accepted proposals for
// stationID.
func (s *ProposalService) CountAcceptedByStation(ctx context.Context, stationID int64) (int64, error) {
	if stationID <= 0 {
		return 0, fmt.Errorf("%w: radioStationId must be positive", ErrValidation)
	}
	return repo.CountAcceptedByStation(ctx, s.DB, stationID)
}

// ListStations returns the registered stations.
func (s *ProposalService) ListStations(ctx context.Context) ([]domain.Station, error) {
	out, err := repo.ListStations(ctx, s.DB)
	if out == nil {
		out = []domain.Station{}
	}
	return out, err
}

// checkArtistAndSong loads the artist and song, verifies agent permission and
// song ownership. It returns the song with its owners.
func (s *ProposalService) checkArtistAndSong(ctx context.Context, tx *gorm.DB, actor domain.Actor, artistID, songID int64) (*domain.Song, error) {
	artist, err := repo.GetArtist(ctx, tx, artistID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: artist %d", ErrInvalidReference, artistID)
		}
		return nil, err
	}
	if actor.Role == domain.RoleAgent && (artist.AgentID == nil || *artist.AgentID != actor.ID) {
		return nil, ErrForbidden
	}

	song, err := repo.GetSong(ctx, tx, songID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: song %d", ErrInvalidReference, songID)
		}
		return nil, err
	}
	owned, err := repo.SongOwnedBy(ctx, tx, songID, artistID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrNotSongOwner
	}
	return song, nil
}

// committed runs the post-commit side effects: metrics, cache invalidation
// and notification.
func (s *ProposalService) committed(ctx context.Context, ev Event) {
	transitionsTotal.WithLabelValues(string(ev.Type)).Inc()

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			ctxLogger(ctx).Warn().Err(err).Msg("stats cache invalidation failed")
		}
	}

	if s.Dispatcher == nil {
		return
	}
	if err := s.Dispatcher.Dispatch(ctx, ev); err != nil {
		df := &DispatchFailure{
			Event:     ev.Type,
			SongID:    ev.Proposal.SongID,
			StationID: ev.Proposal.StationID,
			Err:       err,
		}
		dispatchFailuresTotal.WithLabelValues(string(ev.Type)).Inc()
		ctxLogger(ctx).Warn().
			Err(df).
			Str("event", string(ev.Type)).
			Int64("song_id", ev.Proposal.SongID).
			Int64("station_id", ev.Proposal.StationID).
			Msg("proposal notification failed")
	}
}

// validateProposal checks the fields shared by single and broadcast
// proposals. description must already be trimmed.
func validateProposal(artistID, songID int64, description string) error {
	switch {
	case artistID <= 0:
		return fmt.Errorf("%w: artistId must be positive", ErrValidation)
	case songID <= 0:
		return fmt.Errorf("%w: songId must be positive", ErrValidation)
	case description == "":
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// preAuthorize rejects actors that can never propose for artistID without
// touching the database. Agents are checked once the artist is loaded.
func preAuthorize(actor domain.Actor, artistID int64) error {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleAgent:
		return nil
	case domain.RoleArtist:
		if actor.ID == artistID {
			return nil
		}
	}
	return ErrForbidden
}

func mapStoreErr(err error, songID, stationID int64) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("%w: song %d, station %d", ErrProposalNotFound, songID, stationID)
	case errors.Is(err, repo.ErrInvalidTransition):
		return fmt.Errorf("%w: song %d, station %d", ErrInvalidTransition, songID, stationID)
	case errors.Is(err, repo.ErrDuplicate):
		return fmt.Errorf("%w: song %d, station %d", ErrDuplicateProposal, songID, stationID)
	}
	return err
}

func nonNil(ps []domain.Proposal, err error) ([]domain.Proposal, error) {
	if err != nil {
		return nil, err
	}
	if ps == nil {
		ps = []domain.Proposal{}
	}
	return ps, nil
}
