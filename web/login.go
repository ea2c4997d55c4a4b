package web

import (
	"net/http"

	"github.com/jazzpaper/reinhardt/auth"
	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

var loginTmpl = tmpl(`<h2>Login</h2>
	<form method="post" class="account-form">
		<div class="form-group">
			<label>E-Mail</label>
			<input type="email" class="form-control" name="email" autocomplete="email" value="{{ .Email }}" required autofocus>
		</div>
		<div class="form-group">
			<label>Password</label>
			<input type="password" class="form-control" name="password" required>
		</div>
		<div class="form-group">
			<button type="submit" class="btn btn-primary" name="login">Login</button>
		</div>
	</form>`)

type loginData struct {
	*context
	Email string
}

func login(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {

	// no re-login
	if ctx.LoggedIn() {
		ctx.SeeOther(core.DenialTarget)
		return nil
	}

	var email string

	if req.Method == http.MethodPost {

		email = req.PostFormValue("email")
		password := req.PostFormValue("password")

		err := ctx.Login(email, password)
		if err == nil {
			ctx.SeeOther(core.DenialTarget)
			return nil
		}
		if err != auth.ErrAuth {
			return err // storage fault
		}
		ctx.Danger(auth.ErrAuth) // same message for unknown email and wrong password
		// keep POST data for the email field
	}

	return loginTmpl.Execute(w, &loginData{
		context: ctx,
		Email:   email,
	})
}
