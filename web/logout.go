package web

import (
	"net/http"

	"github.com/jazzpaper/reinhardt/core"
	"github.com/julienschmidt/httprouter"
)

// logout is POST only, so crawlers and link prefetching can't log anyone out.
func logout(w http.ResponseWriter, req *http.Request, ctx *context, _ httprouter.Params) error {
	if !ctx.CheckToken(req.PostFormValue("token")) {
		ctx.Danger(ErrBadToken)
		ctx.SeeOther(core.DenialTarget)
		return nil
	}
	ctx.Logout()
	ctx.Success("Goodbye")
	ctx.SeeOther("/accounts/login/")
	return nil
}
