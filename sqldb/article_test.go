package sqldb

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/jazzpaper/reinhardt/auth"
)

func seedUser(t *testing.T, a *auth.AuthDB, name string) auth.DBUser {
	t.Helper()
	u, err := a.Register(name, name+"@example.com", "minorswing", "minorswing")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestArticleOrdering(t *testing.T) {

	var db = openTestDB(t)
	var a = &auth.AuthDB{UserDB: NewUserDB(db)}
	var articles = NewArticleDB(db)

	var author = seedUser(t, a, "erin")

	for i := 1; i <= 3; i++ {
		if _, err := articles.InsertArticle(author.Id(), fmt.Sprintf("Article %d", i), "content"); err != nil {
			t.Fatal(err)
		}
	}

	count, err := articles.CountArticles()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("got count %d", count)
	}

	all, err := articles.GetAllArticles(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d articles", len(all))
	}

	// newest first, the id breaks ties within the same second
	for i, want := range []string{"Article 3", "Article 2", "Article 1"} {
		if all[i].Title != want {
			t.Errorf("position %d: got %q, want %q", i, all[i].Title, want)
		}
	}
	if all[0].AuthorName != "erin" {
		t.Errorf("got author %q", all[0].AuthorName)
	}

	// pagination
	page, err := articles.GetAllArticles(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].Title != "Article 1" {
		t.Errorf("got page %v", page)
	}
}

func TestArticleUpdate(t *testing.T) {

	var db = openTestDB(t)
	var a = &auth.AuthDB{UserDB: NewUserDB(db)}
	var articles = NewArticleDB(db)

	var author = seedUser(t, a, "frank")

	id, err := articles.InsertArticle(author.Id(), "Nuages", "first version")
	if err != nil {
		t.Fatal(err)
	}

	created, err := articles.GetArticle(id)
	if err != nil {
		t.Fatal(err)
	}
	if created.TsUpdated != created.TsCreated {
		t.Error("a new article must not look edited")
	}

	if err := articles.UpdateArticle(id, "Nuages (take 2)", "second version"); err != nil {
		t.Fatal(err)
	}

	updated, err := articles.GetArticle(id)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Nuages (take 2)" || updated.Content != "second version" {
		t.Errorf("got %q %q", updated.Title, updated.Content)
	}
	if updated.TsCreated != created.TsCreated {
		t.Error("the creation timestamp must not change")
	}
	if updated.TsUpdated < updated.TsCreated {
		t.Error("the update timestamp went backwards")
	}
	if updated.AuthorID != author.Id() {
		t.Error("the author must not change")
	}
}

func TestArticleScoped(t *testing.T) {

	var db = openTestDB(t)
	var a = &auth.AuthDB{UserDB: NewUserDB(db)}
	var articles = NewArticleDB(db)

	var owner = seedUser(t, a, "grace")
	var other = seedUser(t, a, "henry")
	var staff = seedUser(t, a, "iris")
	if err := a.SetStaff(staff, true); err != nil {
		t.Fatal(err)
	}

	id, err := articles.InsertArticle(owner.Id(), "Belleville", "content")
	if err != nil {
		t.Fatal(err)
	}

	if got, err := articles.GetArticleScoped(id, owner); err != nil || got.ID != id {
		t.Errorf("owner: got %v, %v", got, err)
	}
	if got, err := articles.GetArticleScoped(id, staff); err != nil || got.ID != id {
		t.Errorf("staff: got %v, %v", got, err)
	}

	// a foreign article and a missing one are indistinguishable
	if _, err := articles.GetArticleScoped(id, other); err != sql.ErrNoRows {
		t.Errorf("other user: got %v, want sql.ErrNoRows", err)
	}
	if _, err := articles.GetArticleScoped(id, nil); err != sql.ErrNoRows {
		t.Errorf("anonymous: got %v, want sql.ErrNoRows", err)
	}
	if _, err := articles.GetArticleScoped(id+100, staff); err != sql.ErrNoRows {
		t.Errorf("missing article: got %v, want sql.ErrNoRows", err)
	}
}

func TestArticleDelete(t *testing.T) {

	var db = openTestDB(t)
	var a = &auth.AuthDB{UserDB: NewUserDB(db)}
	var articles = NewArticleDB(db)

	var author = seedUser(t, a, "jules")

	id, err := articles.InsertArticle(author.Id(), "Tears", "content")
	if err != nil {
		t.Fatal(err)
	}

	if err := articles.DeleteArticle(id); err != nil {
		t.Fatal(err)
	}
	if _, err := articles.GetArticle(id); err != sql.ErrNoRows {
		t.Errorf("got %v, want sql.ErrNoRows", err)
	}
}

// TestArticleCascade deletes a user row directly and expects the foreign
// key cascade to take the user's articles along.
func TestArticleCascade(t *testing.T) {

	var db = openTestDB(t)
	var a = &auth.AuthDB{UserDB: NewUserDB(db)}
	var articles = NewArticleDB(db)

	var author = seedUser(t, a, "karen")

	for i := 0; i < 2; i++ {
		if _, err := articles.InsertArticle(author.Id(), fmt.Sprintf("Article %d", i), "content"); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := db.Exec("DELETE FROM usr WHERE id = ?", author.Id()); err != nil {
		t.Fatal(err)
	}

	count, err := articles.CountArticles()
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("got count %d, want 0", count)
	}
}
