package services

import (
	"errors"

	"inventory/internal/crypto"
	"inventory/internal/domain"
	"inventory/internal/repos"
	"inventory/internal/validate"
)

var ErrBadCreds = errors.New("invalid email or password")

// ErrEmailTaken reports a registration against an email that already exists.
var ErrEmailTaken = errors.New("email already registered")

type AuthService struct {
	Users  *repos.UserRepo
	Hasher crypto.Hasher
}

func NewAuthService(users *repos.UserRepo, hasher crypto.Hasher) *AuthService {
	return &AuthService{Users: users, Hasher: hasher}
}

// Register validates in, stores the password digest and creates the user. Field
// problems come back as validate.Errors.
func (s *AuthService) Register(in validate.RegisterInput) error {
	in, err := validate.Registration(in)
	if err != nil {
		return err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return err
	}
	err = s.Users.Create(domain.User{Name: in.Name, Email: in.Email, Hash: hash})
	if errors.Is(err, repos.ErrDuplicate) {
		return ErrEmailTaken
	}
	return err
}

// Login returns the user whose email and password digest match. Unknown email,
// wrong password and blank input all yield ErrBadCreds; storage failures are
// returned as-is.
func (s *AuthService) Login(email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, ErrBadCreds
	}
	u, err := s.Users.ByEmail(email)
	if errors.Is(err, repos.ErrNotFound) {
		return nil, ErrBadCreds
	}
	if err != nil {
		return nil, err
	}
	if !s.Hasher.Verify(u.Hash, password) {
		return nil, ErrBadCreds
	}
	u.Hash = ""
	return u, nil
}
