package core

import (
	"encoding/gob"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/jazzpaper/reinhardt/auth"
	"github.com/jazzpaper/reinhardt/util"
	"golang.org/x/text/language"
)

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // required for storing Notifications in a session
}

var langMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish, // default
	language.German,
})

var monthNamesDe = strings.NewReplacer(
	"January", "Januar",
	"February", "Februar",
	"March", "März",
	"May", "Mai",
	"June", "Juni",
	"July", "Juli",
	"October", "Oktober",
	"December", "Dezember",
)

// A Request is created by App.NewRequest.
type Request struct {
	app  *App // unexported, so it can't be accessed in templates
	User auth.User

	// http
	writer  http.ResponseWriter
	request *http.Request

	// robustness
	statusWritten bool

	// caching
	language language.Tag
}

// NewRequest creates a Request with the given http.ResponseWriter and http.Request.
// If a user is logged in, it sets Request.User.
func (a *App) NewRequest(w http.ResponseWriter, httpreq *http.Request) *Request {

	var req = &Request{
		app:     a,
		writer:  w,
		request: httpreq,
	}

	req.language, _ = language.MatchStrings(langMatcher, httpreq.Header.Get("Accept-Language"))

	if uid := a.SessionManager.GetInt(httpreq.Context(), "uid"); uid != 0 {
		u, err := a.Auth.GetUser(uid)
		if u != nil && err == nil {
			req.User = u
		}
		// ignore errors
	}

	return req
}

// Danger adds a "danger" notification to the session.
func (req *Request) Danger(err error) {
	req.addNotification(err.Error(), "danger")
}

// Success adds a "success" notification to the session.
func (req *Request) Success(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "success")
}

func (req *Request) addNotification(message, style string) {
	notifications, _ := req.app.SessionManager.Get(req.request.Context(), "notifications").([]Notification)
	notifications = append(notifications, Notification{message, style})
	req.app.SessionManager.Put(req.request.Context(), "notifications", notifications)
}

// RenderNotifications removes all notifications from the session
// and renders them into an HTML string.
// If the HTTP status had already been written, it does nothing.
func (req *Request) RenderNotifications() template.HTML {
	var r string
	if !req.statusWritten {
		notifications, _ := req.app.SessionManager.Pop(req.request.Context(), "notifications").([]Notification)
		for _, n := range notifications {
			r += `<div class="alert alert-` + n.Style + `" role="alert">` + template.HTMLEscapeString(n.Message) + `</div>`
		}
	}
	return template.HTML(r)
}

// Cleanup destroys the session (which means re-setting the cookie with zero lifetime)
// if the session has been modified and is empty now.
func (req *Request) Cleanup() {
	sessMan := req.app.SessionManager
	if sessMan.Status(req.request.Context()) == scs.Modified && len(sessMan.Keys(req.request.Context())) == 0 {
		_ = sessMan.Destroy(req.request.Context())
	}
}

// SeeOther sets the HTTP header to redirect to an URL.
func (req *Request) SeeOther(format string, args ...interface{}) {
	if req.statusWritten {
		return
	}
	var url = fmt.Sprintf(format, args...)
	http.Redirect(req.writer, req.request, url, http.StatusSeeOther)
	req.statusWritten = true
}

// Login checks the credentials and authenticates the session on success.
func (req *Request) Login(email string, enteredPass string) error {
	if req.LoggedIn() {
		return nil
	}
	u, err := req.app.Auth.LoginUser(auth.CleanEmail(email), enteredPass)
	if err != nil {
		return err // is auth.ErrAuth if email or enteredPass is wrong
	}
	req.Authenticate(u)
	return nil
}

// Authenticate stores the user id in the session. Registration uses it
// to log the new user in right away, without a separate login step.
func (req *Request) Authenticate(u auth.User) {
	req.User = u
	req.app.SessionManager.Put(req.request.Context(), "uid", u.Id())
	req.Success("Welcome %s!", u.Username())
}

func (req *Request) LoggedIn() bool {
	return req.User != nil
}

// Logout removes the user id and the token from the session and calls req.Cleanup().
func (req *Request) Logout() {
	if req.LoggedIn() {
		req.app.SessionManager.Remove(req.request.Context(), "uid")
		req.app.SessionManager.Remove(req.request.Context(), "token")
		req.User = nil
	}
	req.Cleanup()
}

// CSRFToken returns the session token which guards state-changing POST
// requests, creating it on first use.
func (req *Request) CSRFToken() string {
	if token := req.app.SessionManager.GetString(req.request.Context(), "token"); token != "" {
		return token
	}
	token, err := util.RandomString32()
	if err != nil {
		return ""
	}
	req.app.SessionManager.Put(req.request.Context(), "token", token)
	return token
}

// CheckToken compares a submitted token against the session token.
func (req *Request) CheckToken(token string) bool {
	return token != "" && token == req.app.SessionManager.GetString(req.request.Context(), "token")
}

func (req *Request) FormatDateTime(ts int64) string {
	b, _ := req.language.Base()
	switch b.String() {
	case "de":
		return monthNamesDe.Replace(time.Unix(ts, 0).Format("2. January 2006 15:04 Uhr"))
	default:
		return time.Unix(ts, 0).Format("January 2, 2006 3:04 PM")
	}
}
