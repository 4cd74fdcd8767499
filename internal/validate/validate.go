package validate

import (
	"math"
	"strconv"
	"strings"

	"inventory/internal/domain"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the result of a failed validation. A nil Errors means the input is ok.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *Errors) add(field, msg string) { *e = append(*e, FieldError{Field: field, Message: msg}) }

// result keeps the ok case a true nil error.
func (e Errors) result() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Number accepts a JSON number or a numeric string ("12.50"), since form-backed
// clients post everything as strings.
type Number struct {
	Value float64
	Set   bool // present and not null/""
	OK    bool // parsed as a finite number
}

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil
	}
	n.Set = true
	v, err := strconv.ParseFloat(s, 64)
	n.OK = err == nil && !math.IsInf(v, 0) && !math.IsNaN(v)
	n.Value = v
	return nil
}

// NumberOf is a convenience for building inputs in code.
func NumberOf(v float64) Number { return Number{Value: v, Set: true, OK: true} }

type BookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Price  Number `json:"price"`
	Stock  Number `json:"stock"`
}

type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func required(errs *Errors, field, v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		errs.add(field, "is required")
	}
	return v
}

// MaxPrice is the largest price the DECIMAL(10,2) price column holds.
const MaxPrice = 99999999.99

// Book checks a book payload: title and author required, 0 < price <= MaxPrice, stock a whole number >= 0.
func Book(in BookInput) (domain.Book, error) {
	var errs Errors
	b := domain.Book{
		Title:  required(&errs, "title", in.Title),
		Author: required(&errs, "author", in.Author),
	}

	switch {
	case !in.Price.Set:
		errs.add("price", "is required")
	case !in.Price.OK:
		errs.add("price", "must be a number")
	case in.Price.Value <= 0:
		errs.add("price", "must be greater than 0")
	case in.Price.Value > MaxPrice:
		errs.add("price", "must not exceed 99999999.99")
	default:
		b.Price = in.Price.Value
	}

	switch {
	case !in.Stock.Set:
		errs.add("stock", "is required")
	case !in.Stock.OK || in.Stock.Value != math.Trunc(in.Stock.Value) || in.Stock.Value > math.MaxInt32:
		errs.add("stock", "must be a whole number")
	case in.Stock.Value < 0:
		errs.add("stock", "must not be negative")
	default:
		b.Stock = int(in.Stock.Value)
	}
	return b, errs.result()
}

func Customer(in CustomerInput) (domain.Customer, error) {
	var errs Errors
	c := domain.Customer{
		Name:  required(&errs, "name", in.Name),
		Email: required(&errs, "email", in.Email),
		Phone: required(&errs, "phone", in.Phone),
	}
	return c, errs.result()
}

// Registration trims name and email; the password is kept verbatim.
func Registration(in RegisterInput) (RegisterInput, error) {
	var errs Errors
	out := RegisterInput{
		Name:     required(&errs, "name", in.Name),
		Email:    required(&errs, "email", in.Email),
		Password: in.Password,
	}
	if in.Password == "" {
		errs.add("password", "is required")
	}
	return out, errs.result()
}
