package mysql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/booknest-api/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.MySQL{
		Host:     "db.internal",
		Port:     3307,
		User:     "books",
		Password: "pw",
		Database: "BookNest",
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)

	assert.Equal(t, "books", parsed.User)
	assert.Equal(t, "pw", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "BookNest", parsed.DBName)
	assert.True(t, parsed.ClientFoundRows)
	assert.False(t, parsed.ParseTime)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &mysql.MySQLError{Number: errDupEntry, Message: "Duplicate entry 'a@x.com' for key 'email'"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("CreateStudent: exec: %w", dup)))
	assert.False(t, isUniqueViolation(&mysql.MySQLError{Number: 1146, Message: "Table doesn't exist"}))
	assert.False(t, isUniqueViolation(errors.New("connection refused")))
}

func TestNew_DoesNotDial(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{
		Driver: config.DriverMySQL,
		MySQL:  config.MySQL{Host: "127.0.0.1", Port: 1, User: "root", Database: "BookNest"},
	}}

	store, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
}
