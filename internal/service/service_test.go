package service

import (
	"errors"
	"fmt"
	"testing"

	"ai-chat-be/internal/model"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/repository/unitofwork"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database with the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	if err := db.AutoMigrate(&model.GuestSession{}, &model.Conversation{}, &model.ShareSnapshot{}); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return db
}

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(newTestDB(t))
}

// nopLogger keeps service log output out of test runs.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// assertAppError checks that err carries the expected HTTP status.
func assertAppError(t *testing.T, err error, wantCode int) {
	t.Helper()
	var appErr *serverutils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Code != wantCode {
		t.Fatalf("expected status %d, got %d (%s)", wantCode, appErr.Code, appErr.Message)
	}
}
