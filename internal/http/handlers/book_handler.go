package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "inventory/internal/log"
	"inventory/internal/repos"
	"inventory/internal/validate"
)

type BookHandler struct {
	Books *repos.BookRepo
}

// GET /api/books[/:id]
func (h *BookHandler) List(c *fiber.Ctx) error {
	if id, ok := pathID(c); ok {
		b, err := h.Books.Get(id)
		if errors.Is(err, repos.ErrNotFound) {
			return failure(c, fiber.StatusNotFound, "Book not found")
		}
		if err != nil {
			return err
		}
		return c.JSON(b)
	}
	books, err := h.Books.All()
	if err != nil {
		return err
	}
	return c.JSON(books)
}

// POST /api/books
func (h *BookHandler) Add(c *fiber.Ctx) error {
	var in validate.BookInput
	if err := decode(c, &in); err != nil {
		return badBody(c)
	}
	b, err := validate.Book(in)
	if err != nil {
		return invalid(c, "Missing required fields", err)
	}
	if err := h.Books.Add(b); err != nil {
		return err
	}
	applog.Audit(c, "book.add", map[string]any{"title": b.Title})
	return message(c, fiber.StatusCreated, "Book added")
}

// PUT /api/books/:id
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Book ID missing in URL")
	}
	var in validate.BookInput
	if err := decode(c, &in); err != nil {
		return badBody(c)
	}
	b, err := validate.Book(in)
	if err != nil {
		return invalid(c, "Missing required fields", err)
	}
	b.ID = id // the URL wins over any id in the body
	if err := h.Books.Update(b); err != nil {
		return err
	}
	applog.Audit(c, "book.update", map[string]any{"book_id": id})
	return message(c, fiber.StatusOK, "Book updated")
}

// DELETE /api/books/:id
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Book ID missing in URL")
	}
	if err := h.Books.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "book.delete", map[string]any{"book_id": id})
	return message(c, fiber.StatusOK, "Book deleted")
}
