package db

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v4/stdlib" // postgres driver
)

func Open(dataSourceName string) (*sql.DB, error) {
	return sql.Open("pgx", dataSourceName)
}

// Openx opens a database handle and wraps it with sqlx.
func Openx(dataSourceName string) (*sqlx.DB, error) {
	rdb, err := Open(dataSourceName)
	if err != nil {
		return nil, err
	}
	return NewDBx(rdb), nil
}

// NewDBx wraps an already opened database handle with sqlx.
func NewDBx(rdb *sql.DB) *sqlx.DB {
	return sqlx.NewDb(rdb, "pgx")
}
