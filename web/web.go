// Package web serves the HTML frontend: the tribute landing page, the
// account flows and the article CRUD pages.
package web

import (
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

var ErrNotAllowed = errors.New("not allowed")
var ErrBadToken = errors.New("the form has expired, please try again")

// context carries the request state into handlers and templates.
type context struct {
	*core.Request
	app    *core.App
	Prefix string // base href with trailing slash, in-page links are relative to it
}

// CanEdit tells templates whether to show edit and delete controls.
func (ctx *context) CanEdit(article *core.Article) bool {
	return core.CanEdit(ctx.User, article).Allowed
}

func middleware(app *core.App, requireLoggedIn bool, f func(http.ResponseWriter, *http.Request, *context, httprouter.Params) error) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		var start = time.Now()

		var ctx = &context{
			Request: app.NewRequest(w, req),
			app:     app,
			Prefix:  app.Base + "/",
		}
		defer ctx.Cleanup()

		if requireLoggedIn && !ctx.LoggedIn() {
			ctx.SeeOther(core.DenialTarget)
			return
		}

		var err = f(w, req, ctx, params)
		if err != nil {
			// probably no template has been executed, so execute the error template
			errorTmpl.Execute(w, struct {
				*context
				Err error
			}{
				context: ctx,
				Err:     err,
			})
		}

		app.Log.Info().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("request")
	}
}

var errorTmpl = tmpl(`
	<div class="alert alert-danger" role="alert">
		{{ .Err }}
	</div>`)

func NewRouter(app *core.App) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	// public
	router.GET("/", middleware(app, false, home))
	router.GET("/for_reinhardt/", middleware(app, false, tribute))
	GETAndPOST("/accounts/register/", middleware(app, false, register))
	GETAndPOST("/accounts/login/", middleware(app, false, login))
	router.GET("/articles/", middleware(app, false, list))
	// "/articles/create/" is dispatched by detail, see there
	GETAndPOST("/articles/:id/", middleware(app, false, detail))

	// private
	router.POST("/accounts/logout/", middleware(app, true, logout))
	GETAndPOST("/articles/:id/edit/", middleware(app, true, edit))
	router.POST("/articles/:id/delete/", middleware(app, true, del))

	return router
}

func home(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {
	ctx.SeeOther(core.DenialTarget)
	return nil
}

func tmpl(text string) *template.Template {
	t := template.Must(layoutTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

// All in-page links are relative, the base tag resolves them against the
// configured prefix. Redirect locations are absolute, util.HandlePrefix
// rewrites those.
var layoutTmpl = template.Must(template.New("layout").Parse(`
<!DOCTYPE html>
<html lang="en">
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1">
		<link rel="stylesheet" type="text/css" href="static/style.css">
		<title>Jazz Guitarist Paper</title>
	</head>
	<body>
		<header class="bg-black">
			<h1 class="text-xl font-bold text-white"><a href="for_reinhardt/">Jazz Guitarist Paper</a></h1>
			<nav>
				<a href="articles/">Articles</a>

				{{ if .LoggedIn }}

					<a href="articles/create/">New article</a>
					<span class="nav-user">Hello {{ .User.Username }}</span>
					<form class="inline" action="accounts/logout/" method="post">
						<input type="hidden" name="token" value="{{ .CSRFToken }}">
						<button type="submit" class="btn-link">Logout</button>
					</form>

				{{ else }}

					<a href="accounts/login/">Login</a>
					<a href="accounts/register/">Register</a>

				{{ end }}
			</nav>
		</header>

		<main class="container">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</main>
	</body>
</html>`))
