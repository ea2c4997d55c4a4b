package core

import (
	"github.com/jazzpaper/reinhardt/auth"
)

// DenialTarget is where denied callers are redirected to. It doubles as the
// landing page, so a denial reveals nothing about the requested article.
const DenialTarget = "/for_reinhardt/"

// A Decision is the result of an authorization check.
type Decision struct {
	Allowed        bool
	RedirectTarget string // where to send the caller if not allowed
}

var allowed = Decision{Allowed: true}

// CanEdit decides whether a user may modify an article: only the author,
// staff or a superuser may. Mutation handlers must additionally fetch through
// ArticleDB.GetArticleScoped, so a denied caller can not distinguish a
// foreign article from a missing one.
func CanEdit(u auth.DBUser, article *Article) Decision {
	if u == nil {
		return Decision{RedirectTarget: DenialTarget}
	}
	if u.IsStaff() || u.IsSuperuser() {
		return allowed
	}
	if article != nil && article.AuthorID == u.Id() {
		return allowed
	}
	return Decision{RedirectTarget: DenialTarget}
}
