package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"

	"github.com/chiayulin/shopmart-backend/internal/auth"
	"github.com/chiayulin/shopmart-backend/internal/cart"
	"github.com/chiayulin/shopmart-backend/internal/config"
	"github.com/chiayulin/shopmart-backend/internal/customer"
	"github.com/chiayulin/shopmart-backend/internal/db"
	"github.com/chiayulin/shopmart-backend/internal/order"
	"github.com/chiayulin/shopmart-backend/internal/product"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		panic("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET is not set")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		panic(err)
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLog)

	productRepo := product.NewPostgresRepository(conn)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService, product.DiskStore{Dir: cfg.UploadDir})

	customerRepo := customer.NewPostgresRepository(conn)
	customerService := customer.NewService(customerRepo, customer.PlaintextVerifier{})
	customerHandler := customer.NewHandler(customerService, cfg.JWTSecret, customer.AdminCredentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
	})

	cartRepo := cart.NewPostgresRepository(conn)
	cartService := cart.NewService(cartRepo, productService, customerService)

	orderRepo := order.NewPostgresRepository(conn)
	orderService := order.NewService(orderRepo, cartService, customerService, productService)
	orderHandler := order.NewHandler(orderService)

	// public surface: catalog reads, register, login
	productHandler.RegisterPublicRoutes(app)
	customerHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	customerHandler.RegisterProtectedRoutes(app)
	cart.NewHandler(cartService).RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", auth.RequireAdmin)
	productHandler.RegisterAdminRoutes(admin)
	customerHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: strings.Join([]string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodHead,
			fiber.MethodPut, fiber.MethodDelete, fiber.MethodPatch,
		}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("%s %s -> %d (%v)\n", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
