package repos

import (
	"github.com/jmoiron/sqlx"

	"inventory/internal/domain"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

func (r *CustomerRepo) All() ([]domain.Customer, error) {
	out := []domain.Customer{}
	err := r.db.Select(&out, `SELECT id, name, email, phone FROM customers ORDER BY id`)
	return out, mapErr(err)
}

func (r *CustomerRepo) Get(id int64) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, r.db.Rebind(`SELECT id, name, email, phone FROM customers WHERE id = ?`), id)
	return c, mapErr(err)
}

func (r *CustomerRepo) Add(c domain.Customer) error {
	_, err := r.db.Exec(r.db.Rebind(`INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)`),
		c.Name, c.Email, c.Phone)
	return mapErr(err)
}

func (r *CustomerRepo) Update(c domain.Customer) error {
	_, err := r.db.Exec(r.db.Rebind(`UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?`),
		c.Name, c.Email, c.Phone, c.ID)
	return mapErr(err)
}

func (r *CustomerRepo) Delete(id int64) error {
	_, err := r.db.Exec(r.db.Rebind(`DELETE FROM customers WHERE id = ?`), id)
	return mapErr(err)
}
