package web

import (
	"net/http"

	"github.com/jazzpaper/reinhardt/auth"
	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

var registerTmpl = tmpl(`<h2>Register</h2>
	<form method="post" class="account-form">
		<div class="form-group">
			<label>Username</label>
			<input type="text" class="form-control" name="username" maxlength="150" value="{{ .Username }}" required autofocus>
		</div>
		<div class="form-group">
			<label>E-Mail</label>
			<input type="email" class="form-control" name="email" autocomplete="email" value="{{ .Email }}" required>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password1" required>
		</div>
		<div class="form-group">
			<label>Repeat password</label>
			<input type="password" class="form-control" name="password2" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="register">Register</button>
		</div>
	</form>`)

type registerData struct {
	*context
	Username string
	Email    string
}

func register(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	if ctx.LoggedIn() {
		ctx.SeeOther(core.DenialTarget)
		return nil
	}

	var username, email string

	if req.Method == http.MethodPost {

		username = req.PostFormValue("username")
		email = req.PostFormValue("email")

		user, err := ctx.app.Auth.Register(username, email, req.PostFormValue("password1"), req.PostFormValue("password2"))
		if err == nil {
			ctx.Authenticate(user) // no separate login step
			ctx.SeeOther(core.DenialTarget)
			return nil
		}
		if !auth.IsValidationError(err) {
			return err // storage fault, don't flash raw error text on the form
		}
		ctx.Danger(err)
		// keep POST data for the username and email fields
	}

	return registerTmpl.Execute(w, &registerData{
		context:  ctx,
		Username: username,
		Email:    email,
	})
}
