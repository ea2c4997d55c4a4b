package sqldb

import (
	"database/sql"
	"time"

	"github.com/jazzpaper/reinhardt/auth"
	"golang.org/x/crypto/bcrypt"
)

type user struct {
	id        int
	username  string
	mail      string
	pass      string // bcrypt hash
	staff     bool
	superuser bool
}

func (u *user) Id() int {
	return u.id
}

func (u *user) Username() string {
	return u.username
}

func (u *user) Email() string {
	return u.mail
}

func (u *user) IsStaff() bool {
	return u.staff
}

func (u *user) IsSuperuser() bool {
	return u.superuser
}

type UserDB struct {
	*sql.DB
	emailExists    *sql.Stmt
	get            *sql.Stmt
	getByEmail     *sql.Stmt
	insert         *sql.Stmt
	setPassword    *sql.Stmt
	setStaff       *sql.Stmt
	setSuperuser   *sql.Stmt
	usernameExists *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	db.Exec(
		`CREATE TABLE IF NOT EXISTS usr (
			id INTEGER PRIMARY KEY,
			username varchar(150) NOT NULL,
			mail varchar(254) NOT NULL,
			password varchar(60) NOT NULL,
			staff int(1) NOT NULL DEFAULT 0,
			superuser int(1) NOT NULL DEFAULT 0,
			tsCreated int(11) NOT NULL,
			UNIQUE(username),
			UNIQUE(mail)
		);`)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.emailExists = mustPrepare(db, "SELECT COUNT(1) FROM usr WHERE mail = ?")
	userDB.get = mustPrepare(db, "SELECT username, mail, password, staff, superuser FROM usr WHERE id = ? LIMIT 1")
	userDB.getByEmail = mustPrepare(db, "SELECT id, username, password, staff, superuser FROM usr WHERE mail = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO usr (username, mail, password, tsCreated) VALUES (?, ?, ?, ?)")
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET password = ? WHERE id = ?")
	userDB.setStaff = mustPrepare(db, "UPDATE usr SET staff = ? WHERE id = ?")
	userDB.setSuperuser = mustPrepare(db, "UPDATE usr SET superuser = ? WHERE id = ?")
	userDB.usernameExists = mustPrepare(db, "SELECT COUNT(1) FROM usr WHERE username = ?")
	return userDB
}

// EmailExists is case-insensitive because emails are stored lowercased.
func (db *UserDB) EmailExists(mail string) (bool, error) {
	var count int
	err := db.emailExists.QueryRow(auth.CleanEmail(mail)).Scan(&count)
	return count > 0, err
}

func (db *UserDB) GetUser(id int) (auth.DBUser, error) {
	var u = &user{
		id: id,
	}
	err := db.get.QueryRow(id).Scan(&u.username, &u.mail, &u.pass, &u.staff, &u.superuser)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *UserDB) GetUserByEmail(mail string) (auth.DBUser, error) {
	var u = &user{
		mail: auth.CleanEmail(mail),
	}
	err := db.getByEmail.QueryRow(u.mail).Scan(&u.id, &u.username, &u.pass, &u.staff, &u.superuser)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// InsertUser stores a new user with a bcrypt hash of the password.
// A uniqueness violation is reported as auth.ErrEmailTaken or
// auth.ErrUsernameTaken, so losing the race against a concurrent
// registration surfaces as a validation error, not as a raw fault.
func (db *UserDB) InsertUser(username, mail, password string) (auth.DBUser, error) {

	mail = auth.CleanEmail(mail)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	res, err := db.insert.Exec(username, mail, string(hash), time.Now().Unix())
	if err != nil {
		if taken, checkErr := db.EmailExists(mail); checkErr == nil && taken {
			return nil, auth.ErrEmailTaken
		}
		var count int
		if checkErr := db.usernameExists.QueryRow(username).Scan(&count); checkErr == nil && count > 0 {
			return nil, auth.ErrUsernameTaken
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &user{
		id:       int(id),
		username: username,
		mail:     mail,
		pass:     string(hash),
	}, nil
}

func (db *UserDB) LoginUser(mail, password string) (auth.DBUser, error) {

	u, err := db.GetUserByEmail(mail)
	if err == sql.ErrNoRows {
		return nil, auth.ErrAuth // user not found
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.(*user).pass), []byte(password)) != nil {
		return nil, auth.ErrAuth // wrong password
	}

	return u, nil
}

func (db *UserDB) SetPassword(u auth.DBUser, password string) error {

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.setPassword.Exec(string(hash), u.Id())
	if err != nil {
		return err
	}

	if u, ok := u.(*user); ok {
		u.pass = string(hash)
	}
	return nil
}

func (db *UserDB) SetStaff(u auth.DBUser, staff bool) error {
	_, err := db.setStaff.Exec(staff, u.Id())
	if err != nil {
		return err
	}
	if u, ok := u.(*user); ok {
		u.staff = staff
	}
	return nil
}

func (db *UserDB) SetSuperuser(u auth.DBUser, superuser bool) error {
	_, err := db.setSuperuser.Exec(superuser, u.Id())
	if err != nil {
		return err
	}
	if u, ok := u.(*user); ok {
		u.superuser = superuser
	}
	return nil
}
