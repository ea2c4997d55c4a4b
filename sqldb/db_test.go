package sqldb

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var testDBCounter int64

// openTestDB returns a fresh in-memory database. Shared cache keeps the
// database alive across connections, so the pool is capped at one
// connection anyway to avoid table locking surprises.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	var name = fmt.Sprintf("sqldbtest%d", atomic.AddInt64(&testDBCounter, 1))

	db, err := sql.Open("sqlite3", "file:"+name+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		db.Close()
	})
	return db
}
