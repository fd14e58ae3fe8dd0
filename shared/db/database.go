package db

import (
	"database/sql"
)

// Database is a connectable store backing the post cache.
type Database interface {
	Connect() error
	Close() error
	DB() *sql.DB
}
