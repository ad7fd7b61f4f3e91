// Package mysql provides the MySQL dialect for sqlstore, backed by
// github.com/go-sql-driver/mysql.
package mysql

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/aanand-mishra/booknest-api/internal/config"
	"github.com/aanand-mishra/booknest-api/internal/storage/sqlstore"
)

// errDupEntry is ER_DUP_ENTRY.
const errDupEntry = 1062

var schema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id       INT AUTO_INCREMENT PRIMARY KEY,
		name     VARCHAR(255) NOT NULL,
		email    VARCHAR(255) NOT NULL UNIQUE,
		birthday DATE         NOT NULL,
		gpa      DOUBLE       NOT NULL,
		password VARCHAR(255) NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id               INT AUTO_INCREMENT PRIMARY KEY,
		title            VARCHAR(255) NOT NULL,
		isbn             VARCHAR(32)  NOT NULL UNIQUE,
		price            DOUBLE       NOT NULL,
		publication_year INT          NOT NULL,
		stock            INT          NOT NULL,
		author_name      VARCHAR(255) NOT NULL,
		category         VARCHAR(255) NOT NULL
	)`,
}

// Dialect is the sqlstore dialect for go-sql-driver/mysql.
var Dialect = sqlstore.Dialect{
	Name:              "mysql",
	Schema:            schema,
	IsUniqueViolation: isUniqueViolation,
}

func isUniqueViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == errDupEntry
}

// DSN builds the driver connection string.
//
// ClientFoundRows makes UPDATE report matched rows instead of changed
// rows, so re-saving an unchanged record is not mistaken for a missing
// id. ParseTime stays off: DATE columns scan straight into strings.
func DSN(cfg config.MySQL) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ClientFoundRows = true
	return c.FormatDSN()
}

// New opens a connection pool to the configured MySQL server.
// No connection is made until Ping, Migrate, or the first query.
func New(cfg *config.Config) (*sqlstore.Store, error) {
	store, err := sqlstore.Open(Dialect, DSN(cfg.Storage.MySQL))
	if err != nil {
		return nil, fmt.Errorf("mysql.New: %w", err)
	}
	return store, nil
}
