package domain

// User is a registered account. Hash holds the password digest and is never serialised.
type User struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Hash  string `db:"password" json:"-"`
}
