package product

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
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

// memStore keeps uploads in a map so the tests never touch the disk.
type memStore struct {
	saved map[string][]byte
}

func (m *memStore) Save(filename string, data []byte) (string, error) {
	if m.saved == nil {
		m.saved = make(map[string][]byte)
	}
	m.saved[filename] = data
	return "/uploads/" + filename, nil
}

func newTestApp(seed []Product) (*fiber.App, *memStore) {
	files := &memStore{}
	h := NewHandler(NewService(NewInMemoryRepository(seed)), files)

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(testSecret),
	}))
	admin := app.Group("/api/v1/admin", auth.RequireAdmin)
	h.RegisterAdminRoutes(admin)
	return app, files
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.IssueToken(0, auth.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	return token
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

func TestGetProductsEndpoint(t *testing.T) {
	app, _ := newTestApp(seedCatalog())

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all []Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 4)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/products?keyword=mug&type=kitchen&sort=price_asc", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var filtered []Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&filtered))
	require.Len(t, filtered, 1)
	require.Equal(t, "Ceramic Mug", filtered[0].Name)
}

func TestGetProductEndpoint(t *testing.T) {
	app, _ := newTestApp(seedCatalog())

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/product/1", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, "/api/v1/product/404", "", "")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetTypesEndpoint(t *testing.T) {
	app, _ := newTestApp(seedCatalog())

	resp := doRequest(t, app, fiber.MethodGet, "/api/v1/products/types", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var types []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&types))
	require.Equal(t, []string{"kitchen", "office"}, types)
}

func TestAdminProductEndpoints(t *testing.T) {
	app, _ := newTestApp(nil)
	token := adminToken(t)

	resp := doRequest(t, app, fiber.MethodPost, "/api/v1/admin/products", token,
		`{"productName":"Notebook","productType":"office","productPrice":"80.00"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotZero(t, created.ID)

	resp = doRequest(t, app, fiber.MethodPost, "/api/v1/admin/products", token, `{"productType":"office"}`)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "name is required")

	resp = doRequest(t, app, fiber.MethodPut, "/api/v1/admin/product/1", token,
		`{"productName":"Notebook","productType":"office","productPrice":"90.00"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodDelete, "/api/v1/admin/product/1", token, "")
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPut, "/api/v1/admin/product/1", token,
		`{"productName":"Notebook"}`)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUploadImageEndpoint(t *testing.T) {
	app, files := newTestApp(seedCatalog())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "mug.png")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "png-bytes")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/admin/product/1/image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, []byte("png-bytes"), files.saved["mug.png"])

	// the catalog now carries the reference
	getResp := doRequest(t, app, fiber.MethodGet, "/api/v1/product/1", "", "")
	var p Product
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&p))
	require.NotNil(t, p.ImageRef)
	require.Equal(t, "/uploads/mug.png", *p.ImageRef)
}
