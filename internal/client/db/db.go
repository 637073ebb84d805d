package db

import (
	"database/sql"
)

type Client interface {
	DB() *sql.DB
	Close() error
}
