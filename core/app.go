package core

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jazzpaper/reinhardt/auth"
	"github.com/rs/zerolog"
)

// App aggregates the storage backends, the session manager and the logger.
// The main function assembles it.
type App struct {
	Auth *auth.AuthDB
	ArticleDB
	SessionManager *scs.SessionManager
	Log            zerolog.Logger

	Base  string  // URL prefix without trailing slash, may be empty
	SqlDB *sql.DB // exported because main closes it
}

func (a *App) Init(sessionStore scs.Store, base string) {
	a.Base = base
	a.SessionManager = scs.New()
	a.SessionManager.Store = sessionStore
	a.SessionManager.Cookie.Path = base + "/"
	a.SessionManager.Cookie.Persist = false                 // don't store the cookie across browser sessions
	a.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	a.SessionManager.Cookie.Secure = false                  // else running on localhost or behind a http proxy fails
	a.SessionManager.IdleTimeout = 12 * time.Hour
	a.SessionManager.Lifetime = 720 * time.Hour
}
