package service

import (
	"database/sql"
	"errors"
	"testing"

	"notekeeper/dao"
	"notekeeper/internal/apperr"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// brokenDB returns a gorm handle whose every query fails with a driver
// connection error: the pool points at a port nothing listens on and gorm
// skips its startup version probe.
func brokenDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, err := sql.Open("mysql", "u:p@tcp(127.0.0.1:1)/notekeeper?timeout=200ms")
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}
	return gdb
}

// A store failure during login must propagate as-is so the boundary renders
// the 500 page; only a missing row or a hash mismatch may read as invalid
// credentials.
func TestAuthenticateStoreFailurePropagates(t *testing.T) {
	svc := NewUserService(dao.NewUserDAO(brokenDB(t)), nil)

	_, err := svc.Authenticate("alice@example.com", "secret1")
	if err == nil {
		t.Fatal("expected an error from the unreachable store")
	}
	if errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("store failure mapped to invalid credentials: %v", err)
	}
}
