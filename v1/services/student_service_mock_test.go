package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apierrors "github.com/KBesada24/CSC430-SWE/pkg/errors"
)

// setupMockDB opens a GORM connection backed by sqlmock for driving
// database failure paths that SQLite cannot produce
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() { sqlDB.Close() })
	return db, mock
}

func TestGetStudent_DatabaseFailure(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	service := NewStudentService(db)

	mock.ExpectQuery(`SELECT \* FROM "students"`).
		WillReturnError(assert.AnError)

	// Act
	student, err := service.GetStudent(context.Background(), "stu_1")

	// Assert
	assert.Nil(t, student)
	require.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeInternal, apiErr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUnreadCount_DatabaseFailure(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	service := NewNotificationService(db, nil)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications"`).
		WillReturnError(assert.AnError)

	// Act
	count, err := service.GetUnreadCount(context.Background(), "stu_1")

	// Assert
	assert.Equal(t, int64(0), count)
	require.Error(t, err)
	apiErr := apierrors.GetAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierrors.ErrorTypeInternal, apiErr.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
