// Package domain defines the persistence models for the song proposal
// workflow: the catalog entities a proposal references (songs, artists,
// agents, stations), the proposal itself, and the station song library
// written when a proposal is accepted. These types are mapped with GORM and
// form the core data layer of the service.
package domain

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Agent represents a person who manages one or more artists and may propose
// songs on their behalf.
type Agent struct {
	ID        int64     `json:"id"    gorm:"primaryKey"`
	Name      string    `json:"name"  gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255)"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table name for Agent.
func (Agent) TableName() string { return "agents" }

// Artist owns songs. AgentID links the artist to the agent allowed to act
// on the artist's behalf.
type Artist struct {
	ID        int64     `json:"id"                 gorm:"primaryKey"`
	Name      string    `json:"name"               gorm:"type:varchar(255);not null"`
	Email     string    `json:"email,omitempty"    gorm:"type:varchar(255)"`
	AgentID   *int64    `json:"agent_id,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Agent *Agent `json:"-" gorm:"foreignKey:AgentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for Artist.
func (Artist) TableName() string { return "artists" }

// Song is a catalog track. Ownership is many-to-many: a song may be owned by
// several artists, and any of them (or their agents) may propose it.
type Song struct {
	ID          int64     `json:"id"           gorm:"primaryKey"`
	Title       string    `json:"title"        gorm:"type:varchar(255);not null"`
	Genre       string    `json:"genre"        gorm:"type:varchar(64);index"`
	Language    string    `json:"language"     gorm:"type:varchar(64);index"`
	ReleaseYear int       `json:"release_year"`
	Duration    int       `json:"duration"`
	CoverPath   string    `json:"cover_path"   gorm:"type:varchar(512)"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Artists []Artist `json:"artists,omitempty" gorm:"many2many:song_artists;"`
}

// TableName returns the database table name for Song.
func (Song) TableName() string { return "songs" }

// Decade returns the release decade label ("1990s"), or "" when the release
// year is unknown.
func (s Song) Decade() string {
	if s.ReleaseYear <= 0 {
		return ""
	}
	return fmt.Sprintf("%ds", s.ReleaseYear/10*10)
}

// ArtistNames returns the owning artists' names joined with ", ".
func (s Song) ArtistNames() string {
	names := make([]string, 0, len(s.Artists))
	for _, a := range s.Artists {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// Station status values.
const (
	StationActive   = "active"
	StationInactive = "inactive"
)

// Station is a radio station that receives proposals. Every non-deleted
// station counts as registered for broadcast proposals.
type Station struct {
	ID        int64          `json:"id"     gorm:"primaryKey"`
	Name      string         `json:"name"   gorm:"type:varchar(255);not null"`
	Email     string         `json:"email"  gorm:"type:varchar(255)"`
	Status    string         `json:"status" gorm:"type:varchar(16);not null;default:'active';check:status IN ('active','inactive')"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-"      gorm:"index"`
}

// TableName returns the database table name for Station.
func (Station) TableName() string { return "stations" }

// Proposal links one song to one station with a resolution status.
// At most one proposal exists per (song_id, station_id), enforced by a unique
// index. Proposals are never deleted; they are the history statistics are
// computed from.
//
// Fields:
//   - ID: surrogate UUID primary key (char(36)).
//   - SongID / StationID: the unique pair.
//   - ArtistID: the artist on whose behalf the song was proposed.
//   - ProposerID / ProposerRole: the actor that submitted it (artist, agent or admin).
//   - Description: free text pitch, required.
//   - Status: Pending, Accepted or Rejected.
//   - ProposalDate: set at creation, never updated.
//   - ResolvedAt: set once the proposal leaves Pending.
type Proposal struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	SongID       int64          `json:"song_id"       gorm:"not null;uniqueIndex:ux_proposal_song_station,priority:1"`
	StationID    int64          `json:"station_id"    gorm:"not null;index;uniqueIndex:ux_proposal_song_station,priority:2"`
	ArtistID     int64          `json:"artist_id"     gorm:"not null;index"`
	ProposerID   int64          `json:"proposer_id"   gorm:"not null"`
	ProposerRole Role           `json:"proposer_role" gorm:"type:varchar(16);not null"`
	Description  string         `json:"description"   gorm:"type:text;not null"`
	Status       ProposalStatus `json:"status"        gorm:"not null;default:0;index;check:status IN (0,1,2)"`
	ProposalDate time.Time      `json:"proposal_date" gorm:"not null;index"`
	ResolvedAt   *time.Time     `json:"resolved_at,omitempty"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`

	Song    Song    `json:"song"    gorm:"foreignKey:SongID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Station Station `json:"station" gorm:"foreignKey:StationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Proposal.
func (Proposal) TableName() string { return "proposals" }

// StationSong is an entry of a station's song library: the songs a station
// accepted and may play.
type StationSong struct {
	StationID  int64     `json:"station_id"  gorm:"primaryKey"`
	SongID     int64     `json:"song_id"     gorm:"primaryKey"`
	AcceptedAt time.Time `json:"accepted_at" gorm:"not null"`
}

// TableName returns the database table name for StationSong.
func (StationSong) TableName() string { return "station_songs" }
