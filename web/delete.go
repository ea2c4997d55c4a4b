package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

// del follows the same owner-or-staff rule as edit: the scoped fetch decides,
// and the token guards against cross-site form posts.
func del(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, err := strconv.Atoi(params.ByName("id"))
	if err != nil {
		http.NotFound(w, req)
		return nil
	}

	if !ctx.CheckToken(req.PostFormValue("token")) {
		ctx.Danger(ErrBadToken)
		ctx.SeeOther("/articles/%d/", id)
		return nil
	}

	article, err := ctx.app.GetArticleScoped(id, ctx.User)
	if errors.Is(err, sql.ErrNoRows) {
		ctx.Danger(ErrNotAllowed)
		ctx.SeeOther(core.DenialTarget)
		return nil
	}
	if err != nil {
		return err
	}

	if err := ctx.app.DeleteArticle(article.ID); err != nil {
		return err
	}

	ctx.Success("Article deleted")
	ctx.SeeOther("/articles/")
	return nil
}
