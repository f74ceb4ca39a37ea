package customer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/stretchr/testify/require"

	"github.com/chiayulin/shopmart-backend/internal/auth"
)

const testSecret = "handler-test-secret"

func newTestApp(seed []Customer) (*fiber.App, *Service) {
	service := NewService(NewInMemoryRepository(seed), PlaintextVerifier{})
	h := NewHandler(service, testSecret, AdminCredentials{Username: "admin", Password: "admin-pass"})

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(testSecret),
	}))
	h.RegisterProtectedRoutes(app)
	admin := app.Group("/api/v1/admin", auth.RequireAdmin)
	h.RegisterAdminRoutes(admin)
	return app, service
}

func doRequest(t *testing.T, app *fiber.App, method, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	app, _ := newTestApp(nil)

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/register", "",
		`{"username":"amy_chen","password":"secret123","custName":"Amy Chen","custEmail":"amy@example.com"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotZero(t, created.ID)
	require.Empty(t, created.Password)

	// same username again
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/register", "",
		`{"username":"amy_chen","password":"secret123","custName":"Amy Chen","custEmail":"amy2@example.com"}`)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// broken field
	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/register", "",
		`{"username":"ab","password":"secret123","custEmail":"x@example.com"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginEndpoint(t *testing.T) {
	app, _ := newTestApp([]Customer{
		{ID: 1, Username: "amy_chen", Password: "secret123", Name: "Amy Chen", Email: "amy@example.com"},
	})

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/login", "",
		`{"username":"amy_chen","password":"secret123"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token    string   `json:"token"`
		Customer Customer `json:"customer"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)
	require.Empty(t, body.Customer.Password)

	// the issued token opens the protected surface
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/profile", body.Token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/login", "",
		`{"username":"amy_chen","password":"wrong"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLoginEndpoint(t *testing.T) {
	app, _ := newTestApp(nil)

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/login", "",
		`{"username":"admin","password":"admin-pass","userType":"admin"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Token)

	// the admin token opens the back office
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/customers", body.Token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/login", "",
		`{"username":"admin","password":"nope","userType":"admin"}`)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProfileEndpoints(t *testing.T) {
	app, service := newTestApp([]Customer{
		{ID: 1, Username: "amy_chen", Password: "secret123", Name: "Amy Chen", Email: "amy@example.com"},
	})
	token, err := auth.IssueToken(1, auth.RoleCustomer, testSecret, time.Hour)
	require.NoError(t, err)

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/profile", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var got Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "amy_chen", got.Username)
	require.Empty(t, got.Password)

	resp = doRequest(t, app, fiber.MethodPut, "/api/v1/profile", token,
		`{"custName":"Amy C.","custEmail":"amy.chen@example.com","custPhone":"0987654321","custAddress":"2 Side St"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := service.GetByID(1)
	require.NoError(t, err)
	require.Equal(t, "Amy C.", stored.Name)
	require.Equal(t, "secret123", stored.Password, "profile update leaves the credential alone")

	// no token
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/profile", "", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminCustomerEndpoints(t *testing.T) {
	app, _ := newTestApp([]Customer{
		{ID: 1, Username: "amy_chen", Password: "secret123", Name: "Amy Chen", Email: "amy@example.com"},
	})
	token, err := auth.IssueToken(0, auth.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/admin/customer/1", token, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/customer/1", token, "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/customer/1", token, "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// customers cannot reach the back office
	custToken, err := auth.IssueToken(1, auth.RoleCustomer, testSecret, time.Hour)
	require.NoError(t, err)
	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/admin/customers", custToken, "")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
