package repos

import (
	"github.com/jmoiron/sqlx"

	"inventory/internal/domain"
)

type BookRepo struct{ db *sqlx.DB }

func NewBookRepo(db *sqlx.DB) *BookRepo { return &BookRepo{db: db} }

// All returns every book ordered by id; an empty table yields an empty, non-nil slice.
func (r *BookRepo) All() ([]domain.Book, error) {
	out := []domain.Book{}
	err := r.db.Select(&out, `SELECT id, title, author, price, stock FROM books ORDER BY id`)
	return out, mapErr(err)
}

func (r *BookRepo) Get(id int64) (domain.Book, error) {
	var b domain.Book
	err := r.db.Get(&b, r.db.Rebind(`SELECT id, title, author, price, stock FROM books WHERE id = ?`), id)
	return b, mapErr(err)
}

// Add inserts b; the store assigns the id and b.ID is ignored.
func (r *BookRepo) Add(b domain.Book) error {
	_, err := r.db.Exec(r.db.Rebind(`
		INSERT INTO books (title, author, price, stock)
		VALUES (?, ?, ?, ?)
	`), b.Title, b.Author, b.Price, b.Stock)
	return mapErr(err)
}

// Update overwrites every mutable column of the row with b.ID. No matching row is not an error.
func (r *BookRepo) Update(b domain.Book) error {
	_, err := r.db.Exec(r.db.Rebind(`
		UPDATE books SET title = ?, author = ?, price = ?, stock = ?
		WHERE id = ?
	`), b.Title, b.Author, b.Price, b.Stock, b.ID)
	return mapErr(err)
}

// Delete removes the row with id; deleting a missing id is a no-op.
func (r *BookRepo) Delete(id int64) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM books WHERE id = ?`), id)
	return mapErr(err)
}
