package web

import (
	"net/http"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

var createTmpl = tmpl(`<h2>New article</h2>` + articleFormContent)

const articleFormContent = `
	<form method="post" class="article-form">
		<div class="form-group">
			<label>Title</label>
			<input type="text" class="form-control" name="title" maxlength="200" placeholder="Enter a title" value="{{ .Title }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Content</label>
			<textarea class="form-control" name="content" rows="10" placeholder="Write your article">{{ .Content }}</textarea>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary">Save</button>
		</div>
	</form>`

type articleFormData struct {
	*context
	Title   string
	Content string
}

// create handles /articles/create/. It is dispatched from detail and does
// the login check itself because of that.
func create(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	if !ctx.LoggedIn() {
		ctx.SeeOther(core.DenialTarget)
		return nil
	}

	var title, content string

	if req.Method == http.MethodPost {

		title = req.PostFormValue("title")
		content = req.PostFormValue("content")

		cleanTitle, cleanContent, err := core.CleanArticleForm(title, content)
		if err == nil {
			// the author is always the session user, never a form field
			if _, err := ctx.app.InsertArticle(ctx.User.Id(), cleanTitle, cleanContent); err != nil {
				return err
			}
			ctx.Success("Article created")
			ctx.SeeOther("/articles/")
			return nil
		}
		ctx.Danger(err)
		// keep POST data for the form fields
	}

	return createTmpl.Execute(w, &articleFormData{
		context: ctx,
		Title:   title,
		Content: content,
	})
}
