package main

import (
	"bytes"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jazzpaper/reinhardt/auth"
	"github.com/jazzpaper/reinhardt/core"
	"github.com/jazzpaper/reinhardt/sqldb"
	"github.com/jazzpaper/reinhardt/sqldb/mysql"
	"github.com/jazzpaper/reinhardt/sqldb/sqlite3"
	"github.com/jazzpaper/reinhardt/util"
	"github.com/jazzpaper/reinhardt/web"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/xo/dburl"
	"golang.org/x/crypto/ssh/terminal"
)

// _fk=1 because the article table cascades on user deletion
const defaultDB = "sqlite3:reinhardt.sqlite3?_busy_timeout=10000&_journal=WAL&_sync=NORMAL&cache=shared&_fk=1"

func main() {

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	var dbArg string // is in both FlagSets

	// default FlagSet

	// Your reverse proxy must not strip the prefix. So if you're using nginx, the "proxy_pass" value should not end with a slash.
	var base = flag.String("base", "", "strip off this `prefix` from every HTTP request and prepend it to every link")
	var configArg = flag.String("config", "", "read listen, db and base from this ini `file` (explicit flags win)")
	flag.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl")
	var listenAddr = flag.String("listen", "127.0.0.1:8080", "serve HTTP content at this `ip:port`")

	// init FlagSet

	var initFlags = flag.NewFlagSet("init", flag.ExitOnError)

	initFlags.StringVar(&dbArg, "db", defaultDB, "sql database url, see github.com/xo/dburl") // copied from above
	var initInsert = initFlags.Bool("insert-user", false, "creates a user with the given email and name, prompting for a password")
	var initMakeStaff = initFlags.Bool("make-staff", false, "gives staff permissions to the user with the given email")
	var initMakeSuperuser = initFlags.Bool("make-superuser", false, "gives superuser permissions to the user with the given email")
	var initSetPassword = initFlags.Bool("set-password", false, "sets a new password for the user with the given email")
	var email = initFlags.String("email", "", "specifies a user `email`")
	var username = initFlags.String("name", "", "specifies a user `name`")

	if len(os.Args) > 1 && os.Args[1] == "init" {
		initFlags.Parse(os.Args[2:])
	} else {
		flag.Parse()
	}

	// config file fills in flags which were not given explicitly

	if *configArg != "" {

		var explicit = map[string]bool{}
		flag.Visit(func(f *flag.Flag) {
			explicit[f.Name] = true
		})

		cfg, err := util.Ini(*configArg)
		if err != nil {
			logger.Error().Err(err).Msg("could not read config file")
			return
		}

		if v, ok := cfg["listen"]; ok && !explicit["listen"] {
			*listenAddr = v
		}
		if v, ok := cfg["db"]; ok && !explicit["db"] {
			dbArg = v
		}
		if v, ok := cfg["base"]; ok && !explicit["base"] {
			*base = v
		}
	}

	// database

	dbURL, err := dburl.Parse(dbArg)
	if err != nil {
		logger.Error().Err(err).Msg("could not parse database url")
		return
	}

	sqlDB, err := sql.Open(dbURL.Driver, dbURL.DSN)
	if err != nil {
		logger.Error().Err(err).Msg("could not open sql database")
		return
	}

	if err = sqlDB.Ping(); err != nil {
		logger.Error().Err(err).Msg("could not ping sql database")
		return
	}

	logger.Info().Str("db", dbURL.String()).Msg("using database")

	// base

	*base = strings.Trim(*base, "/")
	if *base != "" {
		*base = "/" + *base
	}

	// assemble stuff

	var sessionStore scs.Store
	switch dbURL.Driver {
	case "mysql":
		sessionStore = mysql.NewSessionStore(sqlDB)
	case "sqlite3":
		sessionStore = sqlite3.NewSessionStore(sqlDB)
	default:
		logger.Error().Str("driver", dbURL.Driver).Msg("unknown database backend")
		return
	}

	app := &core.App{}
	app.Init(sessionStore, *base)
	app.Auth = &auth.AuthDB{UserDB: sqldb.NewUserDB(sqlDB)}
	app.ArticleDB = sqldb.NewArticleDB(sqlDB)
	app.Log = logger
	app.SqlDB = sqlDB

	defer func() {
		logger.Info().Msg("closing database")
		sqlDB.Close()
	}()

	// init

	if initFlags.Parsed() {
		switch {
		case *initInsert:
			insertUser(app, *username, *email)
		case *initMakeStaff:
			makeStaff(app, *email)
		case *initMakeSuperuser:
			makeSuperuser(app, *email)
		case *initSetPassword:
			setPassword(app, *email)
		}
		return
	}

	listen(app, logger, *listenAddr, *base)
}

// promptPassword reads the password twice from the terminal, without echo.
func promptPassword() (string, error) {

	fmt.Printf("password: ")
	pass1, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		return "", err
	}

	fmt.Printf("repeat password: ")
	pass2, err := terminal.ReadPassword(0)
	fmt.Println()
	if err != nil {
		return "", err
	}

	if !bytes.Equal(pass1, pass2) {
		return "", auth.ErrPasswordMismatch
	}

	return string(pass1), nil
}

func insertUser(app *core.App, name string, email string) {

	pass, err := promptPassword()
	if err != nil {
		app.Log.Error().Err(err).Msg("error reading password")
		return
	}

	// same validation as the registration form
	user, err := app.Auth.Register(name, email, pass, pass)
	if err != nil {
		app.Log.Error().Err(err).Str("email", email).Msg("error creating user")
		return
	}

	app.Log.Info().Int("id", user.Id()).Str("email", user.Email()).Msg("created user")
}

func makeStaff(app *core.App, email string) {

	user, err := app.Auth.GetUserByEmail(email)
	if err != nil {
		app.Log.Error().Err(err).Str("email", email).Msg("error getting user")
		return
	}

	if err := app.Auth.SetStaff(user, true); err != nil {
		app.Log.Error().Err(err).Msg("error giving staff permissions")
		return
	}
}

func makeSuperuser(app *core.App, email string) {

	user, err := app.Auth.GetUserByEmail(email)
	if err != nil {
		app.Log.Error().Err(err).Str("email", email).Msg("error getting user")
		return
	}

	if err := app.Auth.SetSuperuser(user, true); err != nil {
		app.Log.Error().Err(err).Msg("error giving superuser permissions")
		return
	}
}

func setPassword(app *core.App, email string) {

	user, err := app.Auth.GetUserByEmail(email)
	if err != nil {
		app.Log.Error().Err(err).Str("email", email).Msg("error getting user")
		return
	}

	pass, err := promptPassword()
	if err != nil {
		app.Log.Error().Err(err).Msg("error reading password")
		return
	}

	if err := app.Auth.SetPassword(user, pass); err != nil {
		app.Log.Error().Err(err).Msg("error setting password")
		return
	}
}

func listen(app *core.App, logger zerolog.Logger, addr string, base string) {

	var mux = http.NewServeMux()
	util.HandlePrefix(mux, base+"/static", http.FileServer(http.Dir("static")))
	util.HandlePrefix(mux, base, web.NewRouter(app))

	sigintChannel := make(chan os.Signal, 1)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error().Err(err).Msg("could not listen")
		return
	}

	logger.Info().Str("addr", addr).Msg("listening")

	httpSrv := &http.Server{
		Handler:      app.SessionManager.LoadAndSave(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := httpSrv.Serve(listener); err != nil {

			// don't panic, we want a graceful shutdown
			if err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("error listening")
			}

			// ensure graceful shutdown
			sigintChannel <- os.Interrupt
		}
	}()

	// graceful shutdown

	signal.Notify(sigintChannel, os.Interrupt, syscall.SIGTERM) // SIGINT (Interrupt) or SIGTERM
	<-sigintChannel

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpSrv.Shutdown(shutdownCtx)
}
