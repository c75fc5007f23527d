package domain

import "time"

// Idempotency records the outcome of a completed proposal submission, keyed
// by (actor_id, scope, key). A retried request carrying the same
// Idempotency-Key is answered from this record instead of creating (and
// failing on) a second proposal.
//
// ResourceKey identifies the created proposal as "<song_id>:<station_id>".
type Idempotency struct {
	ID          string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	ActorID     int64     `gorm:"type:INTEGER NOT NULL;uniqueIndex:ux_actor_scope_key,priority:1"`
	Scope       string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_actor_scope_key,priority:2"`
	Key         string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_actor_scope_key,priority:3"`
	ResourceKey string    `gorm:"type:TEXT NOT NULL"`
	Status      int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	ExpiresAt   time.Time `gorm:"index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
