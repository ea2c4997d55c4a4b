package core

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/icza/gox/stringsx"
	"github.com/jazzpaper/reinhardt/auth"
)

const MaxTitleRunes = 200

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 200 characters")
	ErrContentRequired = errors.New("content is required")
)

// An Article is one text entry, owned by the user who created it.
// The author never changes after creation.
type Article struct {
	ID         int
	AuthorID   int
	AuthorName string
	Title      string
	Content    string
	TsCreated  int64 // set once at creation
	TsUpdated  int64 // refreshed on every save
}

type ArticleDB interface {
	CountArticles() (int, error)
	GetAllArticles(limit, offset int) ([]*Article, error) // newest first, author name populated
	GetArticle(id int) (*Article, error)

	// GetArticleScoped returns the article only if the user may modify it:
	// staff and superusers see every article, other users only their own.
	// Out-of-scope and missing articles are both reported as sql.ErrNoRows.
	GetArticleScoped(id int, u auth.DBUser) (*Article, error)

	InsertArticle(authorID int, title, content string) (int, error)
	UpdateArticle(id int, title, content string) error
	DeleteArticle(id int) error
}

// CleanArticleForm normalizes and validates submitted title and content.
func CleanArticleForm(title, content string) (string, string, error) {
	title = stringsx.Clean(strings.TrimSpace(title))
	if title == "" {
		return "", "", ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleRunes {
		return "", "", ErrTitleTooLong
	}
	if strings.TrimSpace(content) == "" {
		return "", "", ErrContentRequired
	}
	return title, content, nil
}
