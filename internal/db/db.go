package db

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open returns an open and verified database connection.
func Open(dsn string) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// Migrate applies the embedded schema. Every statement is idempotent so
// running it on every boot is safe.
func Migrate(conn *sql.DB) error {
	_, err := conn.Exec(Schema)
	return err
}
