// Song proposal HTTP handlers.
//
// This file exposes REST endpoints for the proposal workflow:
//   - POST /SongProposal                      (propose to one station, or "all")
//   - POST /SongProposal/all                  (propose to every station)
//   - POST /SongProposal/accept|reject        (resolve a pending proposal)
//   - GET  /SongProposal                      (fetch one proposal)
//   - GET  /SongProposal/by_station           (paginated, ETag support)
//   - GET  /SongProposal/by_artist|by_status  (filters)
//   - GET  /SongProposal/count                (proposals per song)
//
// Handlers are transport-thin: they parse ids and bodies, resolve the actor
// set by middleware, call the workflow services, and render one explicit
// response schema per operation.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-proposal-backend/internal/domain"
	"github.com/tbourn/go-proposal-backend/internal/http/middleware"
	"github.com/tbourn/go-proposal-backend/internal/repo"
	"github.com/tbourn/go-proposal-backend/internal/services"
	"github.com/tbourn/go-proposal-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// ProposalService defines the workflow operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProposalService interface {
	Propose(ctx context.Context, actor domain.Actor, in services.ProposeInput) (*domain.Proposal, error)
	ProposeToAllStations(ctx context.Context, actor domain.Actor, in services.BroadcastInput) (*services.BroadcastResult, error)
	Accept(ctx context.Context, actor domain.Actor, stationID, songID int64) (*domain.Proposal, error)
	Reject(ctx context.Context, actor domain.Actor, stationID, songID int64) (*domain.Proposal, error)
	Get(ctx context.Context, songID, stationID int64) (*domain.Proposal, error)
	// ListByStation returns a page of a station's proposals and the total count.
	ListByStation(ctx context.Context, stationID int64, page, pageSize int) ([]domain.Proposal, int64, error)
	ListByArtist(ctx context.Context, artistID int64) ([]domain.Proposal, error)
	ListByStatus(ctx context.Context, status domain.ProposalStatus) ([]domain.Proposal, error)
	CountForSong(ctx context.Context, songID int64) (int64, error)
	CountAcceptedByStation(ctx context.Context, stationID int64) (int64, error)
	ListStations(ctx context.Context) ([]domain.Station, error)
}

// StatsService defines the read-only statistics views.
type StatsService interface {
	Summary(ctx context.Context) (*services.Summary, error)
	Breakdown(ctx context.Context) (*services.Breakdown, error)
	AcceptedProposalsForStation(ctx context.Context, stationID int64) ([]domain.Proposal, error)
	ByLanguage(ctx context.Context, lang string) ([]domain.Proposal, error)
	ByGenre(ctx context.Context, genre string) ([]domain.Proposal, error)
}

//
// Handler wiring
//

// Handlers groups the proposal, statistics and station endpoints.
type Handlers struct {
	proposals ProposalService
	stats     StatsService

	// IdempotencyTTL bounds how long a stored Idempotency-Key can be replayed.
	IdempotencyTTL time.Duration
}

// New constructs and returns a Handlers instance bound to the given services.
func New(proposals ProposalService, stats StatsService) *Handlers {
	return &Handlers{proposals: proposals, stats: stats, IdempotencyTTL: 24 * time.Hour}
}

//
// DTOs
//

// SongView is the song embedded in every proposal response.
type SongView struct {
	ID          int64  `json:"id"          example:"10"`
	Title       string `json:"title"       example:"Blue Hour"`
	Genre       string `json:"genre"       example:"Pop"`
	Language    string `json:"language"    example:"English"`
	ReleaseYear int    `json:"releaseYear" example:"1994"`
	Decade      string `json:"decade"      example:"1990s"`
	// Duration in seconds.
	Duration  int    `json:"duration"  example:"215"`
	CoverPath string `json:"coverPath" example:"covers/blue-hour.jpg"`
	// Artists are the owning artists' names, comma separated.
	Artists string `json:"artists" example:"Nova, Orbit"`
}

// StationView is the station embedded in proposal responses and station lists.
type StationView struct {
	ID     int64  `json:"id"     example:"5"`
	Name   string `json:"name"   example:"Radio Five"`
	Status string `json:"status" example:"active"`
}

// ProposalResponse is a proposal with its song and station details and the
// status presentation (label and color).
type ProposalResponse struct {
	ID           string      `json:"id"           example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	SongID       int64       `json:"songId"       example:"10"`
	StationID    int64       `json:"stationId"    example:"5"`
	ArtistID     int64       `json:"artistId"     example:"1"`
	Description  string      `json:"description"  example:"Fits your morning rotation."`
	Status       int         `json:"status"       example:"0"`
	StatusLabel  string      `json:"statusLabel"  example:"Pending"`
	StatusColor  string      `json:"statusColor"  example:"warning"`
	ProposalDate time.Time   `json:"proposalDate"`
	ResolvedAt   *time.Time  `json:"resolvedAt,omitempty"`
	Song         SongView    `json:"song"`
	Station      StationView `json:"station"`
}

// ProposeRequest is the JSON payload for proposing a song. StationID is
// either a positive station id or the string "all".
type ProposeRequest struct {
	ArtistID    int64             `json:"artistId"    example:"1"`
	StationID   domain.StationRef `json:"stationId"   swaggertype:"string" example:"5"`
	SongID      int64             `json:"songId"      example:"10"`
	Description string            `json:"description" example:"Fits your morning rotation."`
}

// BroadcastRequest is the JSON payload for proposing a song to every station.
type BroadcastRequest struct {
	ArtistID    int64  `json:"artistId"    example:"1"`
	SongID      int64  `json:"songId"      example:"10"`
	Description string `json:"description" example:"Fits your morning rotation."`
}

// StationFailureResponse reports why one station of a broadcast failed.
type StationFailureResponse struct {
	StationID int64  `json:"stationId" example:"6"`
	Code      string `json:"code"      example:"duplicate_proposal"`
	Error     string `json:"error"     example:"proposal already exists: song 10, station 6"`
}

// BroadcastResponse lists the proposals created by a broadcast and the
// stations that failed. Both lists are ordered by station id.
type BroadcastResponse struct {
	Succeeded []ProposalResponse       `json:"succeeded"`
	Failed    []StationFailureResponse `json:"failed"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListProposalsResponse contains a page of a station's proposals.
type ListProposalsResponse struct {
	Proposals  []ProposalResponse `json:"proposals"`
	Pagination Pagination         `json:"pagination"`
}

// CountResponse carries a single count.
type CountResponse struct {
	Count int64 `json:"count" example:"3"`
}

//
// Helpers
//

func toProposalResponse(p domain.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:           p.ID,
		SongID:       p.SongID,
		StationID:    p.StationID,
		ArtistID:     p.ArtistID,
		Description:  p.Description,
		Status:       int(p.Status),
		StatusLabel:  p.Status.String(),
		StatusColor:  p.Status.Color(),
		ProposalDate: p.ProposalDate,
		ResolvedAt:   p.ResolvedAt,
		Song: SongView{
			ID:          p.Song.ID,
			Title:       p.Song.Title,
			Genre:       p.Song.Genre,
			Language:    p.Song.Language,
			ReleaseYear: p.Song.ReleaseYear,
			Decade:      p.Song.Decade(),
			Duration:    p.Song.Duration,
			CoverPath:   p.Song.CoverPath,
			Artists:     p.Song.ArtistNames(),
		},
		Station: toStationView(p.Station),
	}
}

func toStationView(st domain.Station) StationView {
	return StationView{ID: st.ID, Name: st.Name, Status: st.Status}
}

// toProposalList never returns nil so lists render as [] rather than null.
func toProposalList(ps []domain.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProposalResponse(p))
	}
	return out
}

func toBroadcastResponse(res *services.BroadcastResult) BroadcastResponse {
	out := BroadcastResponse{
		Succeeded: toProposalList(res.Succeeded),
		Failed:    make([]StationFailureResponse, 0, len(res.Failed)),
	}
	for _, f := range res.Failed {
		msg := f.Err.Error()
		if f.Code == services.CodeInternal {
			msg = "internal error"
		}
		out.Failed = append(out.Failed, StationFailureResponse{
			StationID: f.StationID,
			Code:      f.Code,
			Error:     msg,
		})
	}
	return out
}

// actor returns the caller resolved by middleware.RequireActor. Routes using
// it are always mounted behind that middleware; the 401 here only guards
// against a wiring mistake.
func actor(c *gin.Context) (domain.Actor, bool) {
	a, found := middleware.ActorFrom(c)
	if !found {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "X-Actor-ID and X-Actor-Role headers are required")
	}
	return a, found
}

// idQuery reads a required positive integer query parameter.
func idQuery(c *gin.Context, name string) (int64, bool) {
	id, valid := utils.PositiveInt64(c.Query(name))
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeValidation, name+" must be a positive integer")
	}
	return id, valid
}

// failErr maps a service error onto the error envelope. Internal errors are
// logged and reported without detail.
func failErr(c *gin.Context, err error) {
	code := services.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case services.CodeValidation:
		status = http.StatusBadRequest
	case services.CodeInvalidReference:
		status = http.StatusUnprocessableEntity
	case services.CodeDuplicateProposal, services.CodeInvalidTransition:
		status = http.StatusConflict
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeForbidden:
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().Err(err).Msg("proposal request failed")
		fail(c, status, ErrCodeInternal, "internal error")
		return
	}
	fail(c, status, code, err.Error())
}

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// resourceKey identifies a proposal in an idempotency record.
func resourceKey(songID, stationID int64) string {
	return strconv.FormatInt(songID, 10) + ":" + strconv.FormatInt(stationID, 10)
}

func parseResourceKey(k string) (songID, stationID int64, ok bool) {
	a, b, found := strings.Cut(k, ":")
	if !found {
		return 0, 0, false
	}
	songID, okA := utils.PositiveInt64(a)
	stationID, okB := utils.PositiveInt64(b)
	return songID, stationID, okA && okB
}

// replay serves a previously created proposal for a repeated
// Idempotency-Key. It reports false when there is nothing to replay.
func (h *Handlers) replay(c *gin.Context, a domain.Actor) bool {
	key, present := middleware.GetIdempotencyKey(c)
	if !present || !middleware.IsReplay(c) {
		return false
	}
	svc, isSvc := h.proposals.(*services.ProposalService)
	if !isSvc || svc.DB == nil {
		return false
	}
	ctx := c.Request.Context()
	rec, err := repo.GetIdempotency(ctx, svc.DB, a.ID, middleware.IdempotencyScope(c), key, time.Now().UTC())
	if err != nil {
		return false
	}
	songID, stationID, valid := parseResourceKey(rec.ResourceKey)
	if !valid {
		return false
	}
	prev, err := h.proposals.Get(ctx, songID, stationID)
	if err != nil {
		return false
	}
	c.Header("Idempotency-Replayed", "true")
	ok(c, http.StatusCreated, toProposalResponse(*prev))
	return true
}

// remember stores the created proposal under the request's Idempotency-Key.
// Best effort: a failure only costs the ability to replay.
func (h *Handlers) remember(c *gin.Context, a domain.Actor, p *domain.Proposal) {
	key, present := middleware.GetIdempotencyKey(c)
	if !present {
		return
	}
	svc, isSvc := h.proposals.(*services.ProposalService)
	if !isSvc || svc.DB == nil {
		return
	}
	ttl := h.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	_, err := repo.CreateIdempotency(c.Request.Context(), svc.DB, a.ID, middleware.IdempotencyScope(c), key,
		resourceKey(p.SongID, p.StationID), http.StatusCreated, ttl)
	if err != nil && !errors.Is(err, repo.ErrDuplicate) {
		middleware.LoggerFrom(c).Warn().Err(err).Str("idempotency_key", key).Msg("idempotency record not stored")
	}
}

//
// Handlers
//

// Propose godoc
// @ID          proposeSong
// @Summary     Propose a song to a station
// @Description Creates a Pending proposal of the song to the station. With stationId "all" the song is proposed to every registered station and a broadcast result is returned instead.
// @Description Single-station proposals support idempotency via the Idempotency-Key header (same key → same proposal).
// @Tags        Proposals
// @Accept      json
// @Produce     json
//
// @Param       X-Actor-ID       header  int     true  "Actor id"                                   example(1)
// @Param       X-Actor-Role     header  string  true  "Actor role (admin|agent|artist|station)"     example(artist)
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"           example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.ProposeRequest  true  "Proposal"
//
// @Success     201  {object} handlers.ProposalResponse   "Created proposal"
// @Success     200  {object} handlers.BroadcastResponse  "Broadcast result (stationId \"all\")"
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     401  {object} handlers.ErrorResponse "Missing actor"
// @Failure     403  {object} handlers.ErrorResponse "Forbidden"
// @Failure     409  {object} handlers.ErrorResponse "Duplicate proposal"
// @Failure     422  {object} handlers.ErrorResponse "Unknown artist, song or station"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal [post]
func (h *Handlers) Propose(c *gin.Context) {
	a, found := actor(c)
	if !found {
		return
	}
	var req ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body: "+err.Error())
		return
	}

	if req.StationID.All {
		h.broadcast(c, a, services.BroadcastInput{
			ArtistID:    req.ArtistID,
			SongID:      req.SongID,
			Description: req.Description,
		})
		return
	}

	if h.replay(c, a) {
		return
	}
	p, err := h.proposals.Propose(c.Request.Context(), a, services.ProposeInput{
		ArtistID:    req.ArtistID,
		StationID:   req.StationID.ID,
		SongID:      req.SongID,
		Description: req.Description,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, a, p)
	ok(c, http.StatusCreated, toProposalResponse(*p))
}

// ProposeToAll godoc
// @ID          proposeSongToAll
// @Summary     Propose a song to every station
// @Description Proposes the song to every registered station. Stations that fail (typically because a proposal already exists) are reported without aborting the others.
// @Tags        Proposals
// @Accept      json
// @Produce     json
//
// @Param       X-Actor-ID    header  int     true  "Actor id"                                example(1)
// @Param       X-Actor-Role  header  string  true  "Actor role (admin|agent|artist|station)"  example(artist)
// @Param       body          body    handlers.BroadcastRequest  true  "Proposal"
//
// @Success     200  {object} handlers.BroadcastResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     401  {object} handlers.ErrorResponse "Missing actor"
// @Failure     403  {object} handlers.ErrorResponse "Forbidden"
// @Failure     422  {object} handlers.ErrorResponse "Unknown artist or song"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/all [post]
func (h *Handlers) ProposeToAll(c *gin.Context) {
	a, found := actor(c)
	if !found {
		return
	}
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body: "+err.Error())
		return
	}
	h.broadcast(c, a, services.BroadcastInput(req))
}

func (h *Handlers) broadcast(c *gin.Context, a domain.Actor, in services.BroadcastInput) {
	res, err := h.proposals.ProposeToAllStations(c.Request.Context(), a, in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toBroadcastResponse(res))
}

// Accept godoc
// @ID          acceptProposal
// @Summary     Accept a pending proposal
// @Description Moves the proposal from Pending to Accepted and adds the song to the station's library. Only the station itself (or an admin) may resolve.
// @Tags        Proposals
// @Produce     json
//
// @Param       X-Actor-ID      header  int     true  "Actor id"     example(5)
// @Param       X-Actor-Role    header  string  true  "Actor role"   example(station)
// @Param       radioStationId  query   int     true  "Station id"   minimum(1)
// @Param       songId          query   int     true  "Song id"      minimum(1)
//
// @Success     200  {object} handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     401  {object} handlers.ErrorResponse "Missing actor"
// @Failure     403  {object} handlers.ErrorResponse "Forbidden"
// @Failure     404  {object} handlers.ErrorResponse "Proposal not found"
// @Failure     409  {object} handlers.ErrorResponse "Proposal is not pending"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/accept [post]
func (h *Handlers) Accept(c *gin.Context) {
	h.resolve(c, h.proposals.Accept)
}

// Reject godoc
// @ID          rejectProposal
// @Summary     Reject a pending proposal
// @Description Moves the proposal from Pending to Rejected. Only the station itself (or an admin) may resolve.
// @Tags        Proposals
// @Produce     json
//
// @Param       X-Actor-ID      header  int     true  "Actor id"     example(5)
// @Param       X-Actor-Role    header  string  true  "Actor role"   example(station)
// @Param       radioStationId  query   int     true  "Station id"   minimum(1)
// @Param       songId          query   int     true  "Song id"      minimum(1)
//
// @Success     200  {object} handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     401  {object} handlers.ErrorResponse "Missing actor"
// @Failure     403  {object} handlers.ErrorResponse "Forbidden"
// @Failure     404  {object} handlers.ErrorResponse "Proposal not found"
// @Failure     409  {object} handlers.ErrorResponse "Proposal is not pending"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/reject [post]
func (h *Handlers) Reject(c *gin.Context) {
	h.resolve(c, h.proposals.Reject)
}

type resolveFunc func(ctx context.Context, actor domain.Actor, stationID, songID int64) (*domain.Proposal, error)

func (h *Handlers) resolve(c *gin.Context, fn resolveFunc) {
	a, found := actor(c)
	if !found {
		return
	}
	stationID, valid := idQuery(c, "radioStationId")
	if !valid {
		return
	}
	songID, valid := idQuery(c, "songId")
	if !valid {
		return
	}
	p, err := fn(c.Request.Context(), a, stationID, songID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalResponse(*p))
}

// GetProposal godoc
// @ID          getProposal
// @Summary     Get the proposal of a song to a station
// @Tags        Proposals
// @Produce     json
//
// @Param       songId          query  int  true  "Song id"     minimum(1)
// @Param       radioStationId  query  int  true  "Station id"  minimum(1)
//
// @Success     200  {object} handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     404  {object} handlers.ErrorResponse "Proposal not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal [get]
func (h *Handlers) GetProposal(c *gin.Context) {
	songID, valid := idQuery(c, "songId")
	if !valid {
		return
	}
	stationID, valid := idQuery(c, "radioStationId")
	if !valid {
		return
	}
	p, err := h.proposals.Get(c.Request.Context(), songID, stationID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalResponse(*p))
}

// ListByStation godoc
// @ID          listProposalsByStation
// @Summary     List a station's proposals (paginated)
// @Description Returns a page of the station's proposals, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Proposals
// @Produce     json
//
// @Param       If-None-Match   header  string  false "Return 304 if ETag matches"  example(W/\"proposals:5:1:20:3:1719792000000000000\")
// @Param       radioStationId  query   int     true  "Station id"                   minimum(1)
// @Param       page            query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size       query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListProposalsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/by_station [get]
func (h *Handlers) ListByStation(c *gin.Context) {
	ctx := c.Request.Context()
	stationID, valid := idQuery(c, "radioStationId")
	if !valid {
		return
	}
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	if svc, isSvc := h.proposals.(*services.ProposalService); isSvc && svc.DB != nil {
		count, maxTS, err := repo.ProposalsStats(ctx, svc.DB, stationID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.UnixNano()
			}
			etag := fmt.Sprintf(`W/"proposals:%d:%d:%d:%d:%d"`, stationID, page, pageSize, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.proposals.ListByStation(ctx, stationID, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListProposalsResponse{
		Proposals: toProposalList(items),
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// ListByArtist godoc
// @ID          listProposalsByArtist
// @Summary     List proposals of an artist's songs
// @Tags        Proposals
// @Produce     json
// @Param       artistId  query  int  true  "Artist id"  minimum(1)
// @Success     200  {array}  handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/by_artist [get]
func (h *Handlers) ListByArtist(c *gin.Context) {
	artistID, valid := idQuery(c, "artistId")
	if !valid {
		return
	}
	items, err := h.proposals.ListByArtist(c.Request.Context(), artistID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalList(items))
}

// ListByStatus godoc
// @ID          listProposalsByStatus
// @Summary     List proposals in a status
// @Description The status is given as its integer value (0, 1, 2) or its label (Pending, Accepted, Rejected).
// @Tags        Proposals
// @Produce     json
// @Param       status  query  string  true  "Status value or label"  example(Accepted)
// @Success     200  {array}  handlers.ProposalResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/by_status [get]
func (h *Handlers) ListByStatus(c *gin.Context) {
	status, err := domain.ParseProposalStatus(c.Query("status"))
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	items, err := h.proposals.ListByStatus(c.Request.Context(), status)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, toProposalList(items))
}

// CountForSong godoc
// @ID          countProposalsForSong
// @Summary     Count a song's proposals across all stations
// @Tags        Proposals
// @Produce     json
// @Param       songId  query  int  true  "Song id"  minimum(1)
// @Success     200  {object} handlers.CountResponse
// @Failure     400  {object} handlers.ErrorResponse "Validation error"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /SongProposal/count [get]
func (h *Handlers) CountForSong(c *gin.Context) {
	songID, valid := idQuery(c, "songId")
	if !valid {
		return
	}
	n, err := h.proposals.CountForSong(c.Request.Context(), songID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, CountResponse{Count: n})
}
