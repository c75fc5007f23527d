// Statistics and station HTTP handlers.
//
// This file exposes the read-only views:
//   - GET /SongProposal/proposals_stats      (status totals)
//   - GET /SongProposal/stats/breakdown      (grouped counts)
//   - GET /SongProposal/accepted_proposals   (a station's accepted proposals)
//   - GET /SongProposal/accepted_count       (a station's accepted count)
//   - GET /SongProposal/by_language|by_type  (song attribute filters)
//   - GET /RadioStation                      (registered stations)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-proposal-backend/internal/services"
)

// Summary godoc
// @ID          proposalsSummary
// @Summary     Proposal totals by status
// @Description total always equals totalPending + totalAccepted + totalRejected. acceptanceRate is accepted / (accepted + rejected), 0 when nothing is resolved.
// @Tags        Statistics
// @Produce     json
// @Success     200  {object} services.Summary
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/proposals_stats [get]
func (h *Handlers) Summary(c *gin.Context) {
	s, err := h.stats.Summary(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, s)
}

// Breakdown godoc
// @ID          proposalsBreakdown
// @Summary     Proposal counts grouped by station, artist, genre, language and decade
// @Tags        Statistics
// @Produce     json
// @Success     200  {object} services.Breakdown
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/stats/breakdown [get]
func (h *Handlers) Breakdown(c *gin.Context) {
	b, err := h.stats.Breakdown(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, b)
}

// AcceptedProposals godoc
// @ID          acceptedProposals
// @Summary     Accepted proposals of a station
// @Tags        Statistics
// @Produce     json
// @Param       radioStationId  query  int  true  "Station id"  minimum(1)
// @Success     200  {array}  handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/accepted_proposals [get]
func (h *Handlers) AcceptedProposals(c *gin.Context) {
	stationID, valid := idQuery(c, "radioStationId")
	if !valid {
		return
	}
	items, err := h.stats.AcceptedProposalsForStation(c.Request.Context(), stationID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalList(items))
}

// AcceptedCount godoc
// @ID          acceptedCount
// @Summary     Number of proposals a station accepted
// @Tags        Statistics
// @Produce     json
// @Param       radioStationId  query  int  true  "Station id"  minimum(1)
// @Success     200  {object} handlers.CountResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/accepted_count [get]
func (h *Handlers) AcceptedCount(c *gin.Context) {
	stationID, valid := idQuery(c, "radioStationId")
	if !valid {
		return
	}
	n, err := h.proposals.CountAcceptedByStation(c.Request.Context(), stationID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}

// ByLanguage godoc
// @ID          proposalsByLanguage
// @Summary     Proposals of songs in a language
// @Description Matching is case-insensitive.
// @Tags        Statistics
// @Produce     json
// @Param       language  query  string  true  "Song language"  example(English)
// @Success     200  {array}  handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/by_language [get]
func (h *Handlers) ByLanguage(c *gin.Context) {
	items, err := h.stats.ByLanguage(c.Request.Context(), c.Query("language"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalList(items))
}

// ByGenre godoc
// @ID          proposalsByGenre
// @Summary     Proposals of songs of a genre
// @Description Matching is case-insensitive.
// @Tags        Statistics
// @Produce     json
// @Param       genre  query  string  true  "Song genre"  example(Pop)
// @Success     200  {array}  handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/by_type [get]
func (h *Handlers) ByGenre(c *gin.Context) {
	items, err := h.stats.ByGenre(c.Request.Context(), c.Query("genre"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalList(items))
}

// ListStations godoc
// @ID          listStations
// @Summary     Registered radio stations
// @Tags        Stations
// @Produce     json
// @Success     200  {array}  handlers.StationView
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /RadioStation [get]
func (h *Handlers) ListStations(c *gin.Context) {
	sts, err := h.proposals.ListStations(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	out := make([]StationView, 0, len(sts))
	for _, st := range sts {
		out = append(out, toStationView(st))
	}
	ok(c, http.StatusOK, out)
}

var (
	_ StatsService    = (*services.StatsService)(nil)
	_ ProposalService = (*services.ProposalService)(nil)
)
