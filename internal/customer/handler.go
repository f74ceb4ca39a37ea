package customer

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chiayulin/shopmart-backend/internal/auth"
)

// AdminCredentials is the back-office login pair checked on /login with
// userType=admin. Compared the same way customer credentials are.
type AdminCredentials struct {
	Username string
	Password string
}

type Handler struct {
	service   *Service
	jwtSecret string
	admin     AdminCredentials
}

func NewHandler(service *Service, jwtSecret string, admin AdminCredentials) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret, admin: admin}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/register", h.register)
	app.Post("/api/v1/login", h.login)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/profile", h.getProfile)
	app.Put("/api/v1/profile", h.updateProfile)
}

func (h *Handler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/customers", h.getCustomers)
	router.Get("/customer/:id<[0-9]+>", h.getCustomer)
	router.Delete("/customer/:id<[0-9]+>", h.deleteCustomer)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"custName"`
	Email    string `json:"custEmail"`
	Phone    string `json:"custPhone"`
	Address  string `json:"custAddress"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Register(Customer{
		Username: payload.Username,
		Password: payload.Password,
		Name:     payload.Name,
		Email:    payload.Email,
		Phone:    payload.Phone,
		Address:  payload.Address,
	})
	if err != nil {
		switch err {
		case ErrUsernameTaken, ErrEmailTaken:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
		case ErrInvalidUsername, ErrInvalidPassword, ErrInvalidEmail, ErrInvalidPhone:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserType string `json:"userType"` // "customer" (default) or "admin"
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if payload.UserType == "admin" {
		return h.adminLogin(c, payload)
	}

	cust, err := h.service.Authenticate(payload.Username, payload.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid username or password"})
	}

	signed, err := auth.IssueToken(cust.ID, auth.RoleCustomer, h.jwtSecret, 72*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{
		"message":  "login successful",
		"customer": cust,
		"token":    signed,
	})
}

func (h *Handler) adminLogin(c *fiber.Ctx, payload *loginRequest) error {
	if h.admin.Username == "" ||
		payload.Username != h.admin.Username || payload.Password != h.admin.Password {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid username or password"})
	}

	signed, err := auth.IssueToken(0, auth.RoleAdmin, h.jwtSecret, 72*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to generate token"})
	}

	return c.JSON(fiber.Map{"message": "login successful", "token": signed})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	customerID, err := auth.CustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	cust, err := h.service.GetByID(customerID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}
	return c.JSON(sanitize(cust))
}

func (h *Handler) updateProfile(c *fiber.Ctx) error {
	customerID, err := auth.CustomerIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	payload := new(Customer)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	updated, err := h.service.Update(customerID, *payload)
	if err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(sanitize(updated))
}

func (h *Handler) getCustomers(c *fiber.Ctx) error {
	customers, err := h.service.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	out := make([]Customer, 0, len(customers))
	for _, cust := range customers {
		out = append(out, sanitize(cust))
	}
	return c.JSON(out)
}

func (h *Handler) getCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	cust, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
	}
	return c.JSON(sanitize(cust))
}

func (h *Handler) deleteCustomer(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	if err := h.service.Delete(id); err != nil {
		switch err {
		case ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "customer not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
