// Package session configures cookie sessions stored in PostgreSQL.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/pgxstore"
	"github.com/alexedwards/scs/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KeyUserID is the session key holding the signed-in user's ID.
const KeyUserID = "user_id"

// New creates a session manager backed by the sessions table.
func New(pool *pgxpool.Pool, lifetime time.Duration, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = pgxstore.New(pool)
	configure(sm, lifetime, isDev)
	return sm
}

func configure(sm *scs.SessionManager, lifetime time.Duration, isDev bool) {
	sm.Lifetime = lifetime
	sm.Cookie.Name = "edusync_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Path = "/"
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	if !isDev {
		sm.Cookie.Name = "__Host-edusync_session"
	}
}
