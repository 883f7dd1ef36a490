package models

import (
	"database/sql"
	"time"
)

// User is the owner of a set of ledger records. Authentication here is a
// thin local-account slice; everything beyond password login lives outside
// this service. Password hashing is the AuthService's job, so one bcrypt
// cost governs every account.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUser inserts a new user and sets its ID.
func (u *User) CreateUser(db *sql.DB) error {
	res, err := db.Exec(`INSERT INTO users (username, password) VALUES (?, ?)`, u.Username, u.Password)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetUserByUsername looks a user up by name.
func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	var u User
	err := db.QueryRow(`SELECT id, username, password FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID looks a user up by primary key.
func GetUserByID(db *sql.DB, id int64) (*User, error) {
	var u User
	err := db.QueryRow(`SELECT id, username, password FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Password)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
