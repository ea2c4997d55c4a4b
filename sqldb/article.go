package sqldb

import (
	"database/sql"
	"time"

	"github.com/jazzpaper/reinhardt/auth"
	"github.com/jazzpaper/reinhardt/core"
)

type ArticleDB struct {
	*sql.DB
	count    *sql.Stmt
	delete   *sql.Stmt
	get      *sql.Stmt
	getAll   *sql.Stmt
	getOwned *sql.Stmt
	insert   *sql.Stmt
	update   *sql.Stmt
}

func NewArticleDB(db *sql.DB) *ArticleDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS article (
			id INTEGER PRIMARY KEY,
			authorId int(11) NOT NULL,
			title varchar(200) NOT NULL,
			content text NOT NULL,
			tsCreated int(11) NOT NULL,
			tsUpdated int(11) NOT NULL,
			FOREIGN KEY (authorId) REFERENCES usr(id) ON DELETE CASCADE
		);`)

	// one query per fetch, the author comes along via the join
	const selectArticle = `
		SELECT a.id, a.authorId, u.username, a.title, a.content, a.tsCreated, a.tsUpdated
		FROM article a JOIN usr u ON u.id = a.authorId `

	var articleDB = &ArticleDB{}
	articleDB.DB = db
	articleDB.count = mustPrepare(db, "SELECT COUNT(1) FROM article")
	articleDB.delete = mustPrepare(db, "DELETE FROM article WHERE id = ?")
	articleDB.get = mustPrepare(db, selectArticle+"WHERE a.id = ? LIMIT 1")
	articleDB.getAll = mustPrepare(db, selectArticle+"ORDER BY a.tsCreated DESC, a.id DESC LIMIT ? OFFSET ?")
	articleDB.getOwned = mustPrepare(db, selectArticle+"WHERE a.id = ? AND a.authorId = ? LIMIT 1")
	articleDB.insert = mustPrepare(db, "INSERT INTO article (authorId, title, content, tsCreated, tsUpdated) VALUES (?, ?, ?, ?, ?)")
	articleDB.update = mustPrepare(db, "UPDATE article SET title = ?, content = ?, tsUpdated = ? WHERE id = ?")
	return articleDB
}

func scanArticle(row *sql.Row) (*core.Article, error) {
	var a = &core.Article{}
	err := row.Scan(&a.ID, &a.AuthorID, &a.AuthorName, &a.Title, &a.Content, &a.TsCreated, &a.TsUpdated)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (db *ArticleDB) CountArticles() (int, error) {
	var count int
	err := db.count.QueryRow().Scan(&count)
	return count, err
}

// GetAllArticles returns articles in reverse-chronological creation order.
// The id breaks ties between articles created within the same second.
func (db *ArticleDB) GetAllArticles(limit, offset int) ([]*core.Article, error) {

	var all = []*core.Article{}

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a = &core.Article{}
		err = rows.Scan(&a.ID, &a.AuthorID, &a.AuthorName, &a.Title, &a.Content, &a.TsCreated, &a.TsUpdated)
		if err != nil {
			return nil, err
		}
		all = append(all, a)
	}

	return all, rows.Err()
}

func (db *ArticleDB) GetArticle(id int) (*core.Article, error) {
	return scanArticle(db.get.QueryRow(id))
}

// GetArticleScoped narrows the fetch to what the user may modify.
// Staff and superusers see every article, other users only their own, so a
// denied caller can not tell a foreign article from a missing one.
func (db *ArticleDB) GetArticleScoped(id int, u auth.DBUser) (*core.Article, error) {
	if u == nil {
		return nil, sql.ErrNoRows
	}
	if u.IsStaff() || u.IsSuperuser() {
		return scanArticle(db.get.QueryRow(id))
	}
	return scanArticle(db.getOwned.QueryRow(id, u.Id()))
}

func (db *ArticleDB) InsertArticle(authorID int, title, content string) (int, error) {

	var now = time.Now().Unix()

	res, err := db.insert.Exec(authorID, title, content, now, now)
	if err != nil {
		return 0, err
	}

	id, err := res.LastInsertId()
	return int(id), err
}

// UpdateArticle replaces title and content and refreshes the update
// timestamp. The author column is never touched.
func (db *ArticleDB) UpdateArticle(id int, title, content string) error {
	_, err := db.update.Exec(title, content, time.Now().Unix(), id)
	return err
}

func (db *ArticleDB) DeleteArticle(id int) error {
	_, err := db.delete.Exec(id)
	return err
}
