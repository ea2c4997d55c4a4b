package web

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

var detailTmpl = tmpl(`<article>
	<h2>{{ .Article.Title }}</h2>
	<div class="article-meta">
		written by {{ .Article.AuthorName }} on {{ .FormatDateTime .Article.TsCreated }}
		{{ if ne .Article.TsUpdated .Article.TsCreated }}
			&middot; updated {{ .FormatDateTime .Article.TsUpdated }}
		{{ end }}
	</div>

	{{ .Body }}

	{{ if .CanEdit .Article }}
		<div class="article-actions">
			<a href="articles/{{ .Article.ID }}/edit/">Edit</a>
			<form class="inline" action="articles/{{ .Article.ID }}/delete/" method="post">
				<input type="hidden" name="token" value="{{ .CSRFToken }}">
				<button type="submit" class="btn-link">Delete</button>
			</form>
		</div>
	{{ end }}
</article>`)

type detailData struct {
	*context
	Article *core.Article
	Body    template.HTML
}

func detail(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	// httprouter can't register a static "create" next to the :id parameter
	if params.ByName("id") == "create" {
		return create(w, req, ctx, params)
	}

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		http.NotFound(w, req)
		return nil
	}

	article, err := ctx.app.GetArticle(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, req)
		return nil
	}
	if err != nil {
		return err
	}

	return detailTmpl.Execute(w, &detailData{
		context: ctx,
		Article: article,
		Body:    renderMarkdown(article.Content),
	})
}
