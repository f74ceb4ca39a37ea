package config

import "os"

type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSecret     string
	UploadDir     string
	AdminUsername string
	AdminPassword string
}

func Load() Config {
	addr := os.Getenv("SHOPMART_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	uploads := os.Getenv("SHOPMART_UPLOAD_DIR")
	if uploads == "" {
		uploads = "./uploads"
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		UploadDir:     uploads,
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}
