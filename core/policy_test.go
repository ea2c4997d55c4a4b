package core

import (
	"testing"

	"github.com/jazzpaper/reinhardt/auth"
)

type testUser struct {
	id        int
	staff     bool
	superuser bool
}

func (u *testUser) Id() int           { return u.id }
func (u *testUser) Username() string  { return "test" }
func (u *testUser) Email() string     { return "test@example.com" }
func (u *testUser) IsStaff() bool     { return u.staff }
func (u *testUser) IsSuperuser() bool { return u.superuser }

func TestCanEdit(t *testing.T) {

	var article = &Article{ID: 1, AuthorID: 7}

	tests := []struct {
		name    string
		user    auth.DBUser
		article *Article
		want    bool
	}{
		{"anonymous", nil, article, false},
		{"author", &testUser{id: 7}, article, true},
		{"other user", &testUser{id: 8}, article, false},
		{"staff", &testUser{id: 8, staff: true}, article, true},
		{"superuser", &testUser{id: 8, superuser: true}, article, true},
		{"author without article", &testUser{id: 7}, nil, false},
		{"staff without article", &testUser{id: 8, staff: true}, nil, true},
	}

	for _, tt := range tests {
		decision := CanEdit(tt.user, tt.article)
		if decision.Allowed != tt.want {
			t.Errorf("%s: got allowed = %v, want %v", tt.name, decision.Allowed, tt.want)
		}
		if !decision.Allowed && decision.RedirectTarget != DenialTarget {
			t.Errorf("%s: got redirect target %q, want %q", tt.name, decision.RedirectTarget, DenialTarget)
		}
	}
}

func TestCleanArticleForm(t *testing.T) {

	if _, _, err := CleanArticleForm("", "some content"); err != ErrTitleRequired {
		t.Errorf("got %v, want ErrTitleRequired", err)
	}

	if _, _, err := CleanArticleForm("  \t ", "some content"); err != ErrTitleRequired {
		t.Errorf("got %v, want ErrTitleRequired", err)
	}

	var long = make([]byte, 0, 201)
	for i := 0; i < 201; i++ {
		long = append(long, 'a')
	}
	if _, _, err := CleanArticleForm(string(long), "some content"); err != ErrTitleTooLong {
		t.Errorf("got %v, want ErrTitleTooLong", err)
	}

	if _, _, err := CleanArticleForm("a title", "   "); err != ErrContentRequired {
		t.Errorf("got %v, want ErrContentRequired", err)
	}

	title, content, err := CleanArticleForm("  Minor Swing  ", "A classic.")
	if err != nil {
		t.Fatal(err)
	}
	if title != "Minor Swing" {
		t.Errorf("got title %q", title)
	}
	if content != "A classic." {
		t.Errorf("got content %q", content)
	}
}
