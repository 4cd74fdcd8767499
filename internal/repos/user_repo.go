package repos

import (
	"inventory/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts name, email and the already-hashed password. A taken email
// yields ErrDuplicate.
func (r *UserRepo) Create(u domain.User) error {
	_, err := r.DB.Exec(r.DB.Rebind(`INSERT INTO users (name, email, password) VALUES (?, ?, ?)`),
		u.Name, u.Email, u.Hash)
	return mapErr(err)
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, r.DB.Rebind(`SELECT id, name, email, password FROM users WHERE email = ?`), email)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
