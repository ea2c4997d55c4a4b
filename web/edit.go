package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

var editTmpl = tmpl(`<h2>Edit article</h2>` + articleFormContent)

func edit(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	// the middleware has ensured the caller is logged in

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		http.NotFound(w, req)
		return nil
	}

	// scoped fetch: a foreign article and a missing one are indistinguishable here
	article, err := ctx.app.GetArticleScoped(id, ctx.User)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.Danger(ErrNotAllowed)
		ctx.SeeOther(core.DenialTarget)
		return nil
	}
	if err != nil {
		return err
	}

	var title, content = article.Title, article.Content

	if req.Method == http.MethodPost {

		title = req.PostFormValue("title")
		content = req.PostFormValue("content")

		cleanTitle, cleanContent, verr := core.CleanArticleForm(title, content)
		if verr == nil {
			if err := ctx.app.UpdateArticle(article.ID, cleanTitle, cleanContent); err != nil {
				return err
			}
			ctx.Success("Article updated")
			ctx.SeeOther("/articles/%d/", article.ID)
			return nil
		}
		ctx.Danger(verr)
		// keep POST data for the form fields
	}

	return editTmpl.Execute(w, &articleFormData{
		context: ctx,
		Title:   title,
		Content: content,
	})
}
