package handlers

import (
	"inventory/internal/config"
	"inventory/internal/crypto"
	"inventory/internal/repos"
	"inventory/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	DB              *sqlx.DB
	BookHandler     *BookHandler
	CustomerHandler *CustomerHandler
	AuthHandler     *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	hasher, err := crypto.NewHasher(cfg.PasswordHash)
	if err != nil {
		return nil, err
	}
	authSvc := services.NewAuthService(repos.NewUserRepo(db), hasher)

	return &Deps{
		DB:              db,
		BookHandler:     &BookHandler{Books: repos.NewBookRepo(db)},
		CustomerHandler: &CustomerHandler{Customers: repos.NewCustomerRepo(db)},
		AuthHandler:     &AuthHandler{Auth: authSvc},
	}, nil
}
