package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/chiayulin/shopmart-backend/internal/auth"
	"github.com/chiayulin/shopmart-backend/internal/customer"
	"github.com/chiayulin/shopmart-backend/internal/product"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/v1/orders", h.checkout)
	app.Get("/api/v1/orders", h.myOrders)
	app.Get("/api/v1/order/:id<[0-9]+>", h.getOrder)
	app.Post("/api/v1/order/:id<[0-9]+>/cancel", h.cancelOrder)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.listOrders)
	router.Get("/order/number/:number", h.getOrderByNumber)
	router.Put("/order/:id<[0-9]+>/status", h.updateStatus)
}

type checkoutRequest struct {
	RecipientName   string `json:"recipientName"`
	RecipientPhone  string `json:"recipientPhone"`
	ShippingAddress string `json:"shippingAddress"`
	Note            string `json:"orderNote"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	customerID, err := auth.CustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.RecipientName == "" || payload.RecipientPhone == "" || payload.ShippingAddress == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "recipient name, phone and shipping address are required"})
	}

	created, err := h.service.CreateFromCart(customerID,
		payload.RecipientName, payload.RecipientPhone, payload.ShippingAddress, payload.Note)
	if err != nil {
		switch err {
		case ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case customer.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		case product.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) myOrders(c *fiber.Ctx) error {
	customerID, err := auth.CustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByCustomer(customerID)
	if err != nil {
		switch err {
		case customer.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(orders)
}

// getOrder serves both roles: admins see any order, customers only their own.
func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	o, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}

	rc := auth.ContextFrom(c)
	if rc.Role != auth.RoleAdmin {
		if rc.CustomerID == nil || *rc.CustomerID != o.CustomerID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your order"})
		}
	}
	return c.JSON(o)
}

func (h *Handler) cancelOrder(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	o, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}

	rc := auth.ContextFrom(c)
	if rc.Role != auth.RoleAdmin {
		if rc.CustomerID == nil || *rc.CustomerID != o.CustomerID {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "not your order"})
		}
	}

	if err := h.service.Cancel(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrIllegalTransition:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "order already shipped, delivered or cancelled"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	var (
		orders []Order
		err    error
	)
	if status := c.Query("status"); status != "" {
		orders, err = h.service.ListByStatus(status)
	} else {
		orders, err = h.service.List()
	}
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown order status"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(orders)
}

func (h *Handler) getOrderByNumber(c *fiber.Ctx) error {
	o, err := h.service.GetByNumber(c.Params("number"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
	}
	return c.JSON(o)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateStatus(id, payload.Status); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		case ErrInvalidStatus:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "unknown order status"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
