// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file resolves the calling actor from the X-Actor-ID / X-Actor-Role
// request headers. IdentifyActor runs globally so logging, rate limiting and
// idempotency can key on the actor; RequireActor guards the workflow routes
// and rejects anonymous callers with 401.
package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-proposal-backend/internal/domain"
)

const (
	// HeaderActorID carries the numeric id of the calling actor.
	HeaderActorID = "X-Actor-ID"
	// HeaderActorRole carries the actor role (admin|agent|artist|station).
	HeaderActorRole = "X-Actor-Role"

	ctxKeyActor = "actor"
)

// IdentifyActor parses the actor headers and stores the resulting
// domain.Actor in the Gin context. Missing or malformed headers leave the
// request anonymous; it never aborts.
func IdentifyActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a, ok := parseActor(c.GetHeader(HeaderActorID), c.GetHeader(HeaderActorRole)); ok {
			c.Set(ctxKeyActor, a)
		}
		c.Next()
	}
}

// RequireActor aborts with 401 unless IdentifyActor (or this middleware
// itself, when IdentifyActor is not installed) resolved an actor.
func RequireActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ActorFrom(c); !ok {
			a, ok := parseActor(c.GetHeader(HeaderActorID), c.GetHeader(HeaderActorRole))
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"request_id": c.Writer.Header().Get(requestIDHeader),
					"code":       "unauthorized",
					"message":    "X-Actor-ID and X-Actor-Role headers are required",
				})
				return
			}
			c.Set(ctxKeyActor, a)
		}
		c.Next()
	}
}

// ActorFrom returns the actor resolved for this request.
func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ctxKeyActor)
	if !ok {
		return domain.Actor{}, false
	}
	a, ok := v.(domain.Actor)
	return a, ok
}

// actorLabel renders the actor as "role:id" for log fields and bucket keys.
func actorLabel(c *gin.Context) string {
	a, ok := ActorFrom(c)
	if !ok {
		return ""
	}
	return string(a.Role) + ":" + strconv.FormatInt(a.ID, 10)
}

func parseActor(rawID, rawRole string) (domain.Actor, bool) {
	role, ok := domain.ParseRole(rawRole)
	if !ok {
		return domain.Actor{}, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return domain.Actor{}, false
	}
	return domain.Actor{ID: id, Role: role}, true
}
