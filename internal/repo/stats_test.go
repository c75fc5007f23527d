package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

func TestProposalsStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	_, _, err := ProposalsStats(context.Background(), db, 5)
	if err == nil {
		t.Fatalf("expected error due to missing proposals table")
	}
}

func TestProposalsStats_ZeroRows(t *testing.T) {
	db := newCatalogDB(t)
	count, maxAt, err := ProposalsStats(context.Background(), db, 5)
	if err != nil {
		t.Fatalf("ProposalsStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestProposalsStats_FilterAndMax(t *testing.T) {
	db := newCatalogDB(t)
	ctx := context.Background()

	for _, p := range []*domain.Proposal{newProposal(10, 5, 1), newProposal(20, 5, 1), newProposal(30, 6, 2)} {
		if err := CreateProposal(ctx, db, p); err != nil {
			t.Fatalf("CreateProposal: %v", err)
		}
	}
	later := time.Now().UTC().Add(time.Hour)
	if _, err := UpdateProposalStatus(ctx, db, 20, 5, domain.StatusAccepted, later); err != nil {
		t.Fatalf("accept: %v", err)
	}

	count, maxAt, err := ProposalsStats(ctx, db, 5)
	if err != nil {
		t.Fatalf("ProposalsStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(later) {
		t.Fatalf("expected maxUpdatedAt %v, got %v", later, maxAt)
	}
}

func TestStatusCounts_SumMatchesRows(t *testing.T) {
	db := newCatalogDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, p := range []*domain.Proposal{
		newProposal(10, 5, 1), newProposal(20, 5, 1), newProposal(30, 5, 2), newProposal(10, 6, 1),
	} {
		if err := CreateProposal(ctx, db, p); err != nil {
			t.Fatalf("CreateProposal: %v", err)
		}
	}
	_, _ = UpdateProposalStatus(ctx, db, 10, 5, domain.StatusAccepted, now)
	_, _ = UpdateProposalStatus(ctx, db, 20, 5, domain.StatusRejected, now)

	counts, err := StatusCounts(ctx, db)
	if err != nil {
		t.Fatalf("StatusCounts: %v", err)
	}
	if counts[domain.StatusPending] != 2 || counts[domain.StatusAccepted] != 1 || counts[domain.StatusRejected] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}

	var total int64
	db.Model(&domain.Proposal{}).Count(&total)
	if sum := counts[domain.StatusPending] + counts[domain.StatusAccepted] + counts[domain.StatusRejected]; sum != total {
		t.Fatalf("status sum %d != row count %d", sum, total)
	}
}

func TestGroupedCounts(t *testing.T) {
	db := newCatalogDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for _, p := range []*domain.Proposal{newProposal(10, 5, 1), newProposal(20, 5, 1), newProposal(30, 6, 2)} {
		if err := CreateProposal(ctx, db, p); err != nil {
			t.Fatalf("CreateProposal: %v", err)
		}
	}
	_, _ = UpdateProposalStatus(ctx, db, 10, 5, domain.StatusAccepted, now)

	byStation, err := CountsByStation(ctx, db)
	if err != nil {
		t.Fatalf("CountsByStation: %v", err)
	}
	perStation := map[string]int64{}
	for _, c := range byStation {
		perStation[c.Key] += c.Count
	}
	if perStation["Radio Five"] != 2 || perStation["Radio Six"] != 1 {
		t.Fatalf("unexpected station counts: %+v", byStation)
	}

	byArtist, err := CountsByArtist(ctx, db)
	if err != nil {
		t.Fatalf("CountsByArtist: %v", err)
	}
	perArtist := map[string]int64{}
	for _, c := range byArtist {
		perArtist[c.Key] += c.Count
	}
	// Song 20 is co-owned and counts for both artists.
	if perArtist["Nova"] != 2 || perArtist["Orbit"] != 2 {
		t.Fatalf("unexpected artist counts: %+v", byArtist)
	}

	byGenre, err := CountsByGenre(ctx, db)
	if err != nil || len(byGenre) == 0 {
		t.Fatalf("CountsByGenre: %v (%d rows)", err, len(byGenre))
	}
	byLang, err := CountsByLanguage(ctx, db)
	if err != nil || len(byLang) == 0 {
		t.Fatalf("CountsByLanguage: %v (%d rows)", err, len(byLang))
	}

	byDecade, err := CountsByDecade(ctx, db)
	if err != nil {
		t.Fatalf("CountsByDecade: %v", err)
	}
	perDecade := map[int]int64{}
	for _, c := range byDecade {
		perDecade[c.Decade] += c.Count
	}
	if perDecade[1990] != 1 || perDecade[2000] != 1 || perDecade[2010] != 1 {
		t.Fatalf("unexpected decade counts: %+v", byDecade)
	}
}
