package web

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

var tributeTmpl = tmpl(`<h2>For Django Reinhardt</h2>

	<p>
		Jean "Django" Reinhardt (1910&ndash;1953) invented an entire vocabulary
		for the guitar with two working fretting fingers. With the Quintette du
		Hot Club de France he turned string swing into an art of its own, and
		every gypsy jazz guitarist since has been answering his phrases.
	</p>

	<p>
		This paper collects articles about his music, his recordings and the
		players carrying the tradition on.
		{{ if .LoggedIn }}
			Write one yourself: <a href="articles/create/">new article</a>.
		{{ else }}
			<a href="accounts/register/">Register</a> or
			<a href="accounts/login/">login</a> to write one yourself.
		{{ end }}
	</p>`)

func tribute(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {
	return tributeTmpl.Execute(w, ctx)
}
