package auth

type DBUser interface {
	Id() int
	Username() string
	Email() string
	IsStaff() bool
	IsSuperuser() bool
}

type UserDB interface {
	EmailExists(email string) (bool, error) // case-insensitive
	GetUser(id int) (DBUser, error)
	GetUserByEmail(email string) (DBUser, error)
	InsertUser(username, email, password string) (DBUser, error)
	LoginUser(email, password string) (DBUser, error)
	SetPassword(u DBUser, password string) error
	SetStaff(u DBUser, staff bool) error
	SetSuperuser(u DBUser, superuser bool) error
}

type User DBUser
