package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Role is the coarse permission level carried by a session token.
type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// RequestContext is the identity the core operations trust. CustomerID is
// nil for admin and anonymous requests.
type RequestContext struct {
	CustomerID *int64
	Role       Role
}

// IssueToken signs a HS256 JWT carrying the customer id and role.
func IssueToken(customerID int64, role Role, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"customer_id": customerID,
		"role":        string(role),
		"exp":         time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ContextFrom rebuilds the request identity from the JWT the jwtware
// middleware stored in the fiber ctx. Requests that skipped the middleware
// get an anonymous context.
func ContextFrom(c *fiber.Ctx) RequestContext {
	u := c.Locals("user")
	if u == nil {
		return RequestContext{Role: RoleNone}
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return RequestContext{Role: RoleNone}
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return RequestContext{Role: RoleNone}
	}

	rc := RequestContext{Role: RoleNone}
	if raw, ok := claims["role"]; ok {
		if s, ok := raw.(string); ok {
			rc.Role = Role(s)
		}
	}
	if raw, ok := claims["customer_id"]; ok {
		// jwt numbers decode as float64
		if f, ok := raw.(float64); ok && f > 0 {
			id := int64(f)
			rc.CustomerID = &id
		}
	}
	return rc
}

// CustomerIDFromCtx returns the authenticated customer id or ErrUnauthorized.
func CustomerIDFromCtx(c *fiber.Ctx) (int64, error) {
	rc := ContextFrom(c)
	if rc.Role != RoleCustomer || rc.CustomerID == nil {
		return 0, fiber.ErrUnauthorized
	}
	return *rc.CustomerID, nil
}

// RequireAdmin guards the back-office routes.
func RequireAdmin(c *fiber.Ctx) error {
	if ContextFrom(c).Role != RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "admin only"})
	}
	return c.Next()
}
