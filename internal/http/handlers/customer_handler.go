package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "inventory/internal/log"
	"inventory/internal/repos"
	"inventory/internal/validate"
)

type CustomerHandler struct {
	Customers *repos.CustomerRepo
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	if id, ok := pathID(c); ok {
		cust, err := h.Customers.Get(id)
		if errors.Is(err, repos.ErrNotFound) {
			return failure(c, fiber.StatusNotFound, "Customer not found")
		}
		if err != nil {
			return err
		}
		return c.JSON(cust)
	}
	all, err := h.Customers.All()
	if err != nil {
		return err
	}
	return c.JSON(all)
}

func (h *CustomerHandler) Add(c *fiber.Ctx) error {
	var in validate.CustomerInput
	if err := decode(c, &in); err != nil {
		return badBody(c)
	}
	cust, err := validate.Customer(in)
	if err != nil {
		return invalid(c, "Missing required fields", err)
	}
	if err := h.Customers.Add(cust); err != nil {
		return err
	}
	applog.Audit(c, "customer.add", map[string]any{"email": cust.Email})
	return message(c, fiber.StatusCreated, "Customer added")
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Customer ID missing in URL")
	}
	var in validate.CustomerInput
	if err := decode(c, &in); err != nil {
		return badBody(c)
	}
	cust, err := validate.Customer(in)
	if err != nil {
		return invalid(c, "Missing required fields", err)
	}
	cust.ID = id
	if err := h.Customers.Update(cust); err != nil {
		return err
	}
	applog.Audit(c, "customer.update", map[string]any{"customer_id": id})
	return message(c, fiber.StatusOK, "Customer updated")
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return failure(c, fiber.StatusBadRequest, "Customer ID missing in URL")
	}
	if err := h.Customers.Delete(id); err != nil {
		return err
	}
	applog.Audit(c, "customer.delete", map[string]any{"customer_id": id})
	return message(c, fiber.StatusOK, "Customer deleted")
}
