// Package mockstorage provides a testify-based mock implementation
// of the storage interfaces used by the service package.
// It is used for unit testing HTTP handlers by simulating storage failures.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

// StorageMock is a testify mock that implements every storage operation
// the service relies on.
type StorageMock struct {
	mock.Mock
}

// Ping mocks the pinger interface to simulate a health check.
func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StorageMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *StorageMock) FindUserByID(ctx context.Context, id string) (models.User, bool, error) {
	args := m.Called(ctx, id)
	usr, _ := args.Get(0).(models.User)
	return usr, args.Bool(1), args.Error(2)
}

func (m *StorageMock) InsertUser(ctx context.Context, usr *models.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

func (m *StorageMock) UpdateUser(
	ctx context.Context,
	id string,
	patch func(usr *models.User),
) (models.User, bool, error) {
	args := m.Called(ctx, id, patch)
	usr, _ := args.Get(0).(models.User)
	return usr, args.Bool(1), args.Error(2)
}

func (m *StorageMock) DeleteUser(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *StorageMock) ListBooks(ctx context.Context) ([]models.Book, error) {
	args := m.Called(ctx)
	books, _ := args.Get(0).([]models.Book)
	return books, args.Error(1)
}

func (m *StorageMock) FindBookByID(ctx context.Context, id string) (models.Book, bool, error) {
	args := m.Called(ctx, id)
	book, _ := args.Get(0).(models.Book)
	return book, args.Bool(1), args.Error(2)
}

func (m *StorageMock) FindBooksByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	args := m.Called(ctx, ownerID)
	books, _ := args.Get(0).([]models.Book)
	return books, args.Error(1)
}

func (m *StorageMock) InsertBook(ctx context.Context, book *models.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *StorageMock) UpdateBook(
	ctx context.Context,
	id string,
	patch func(book *models.Book),
) (models.Book, bool, error) {
	args := m.Called(ctx, id, patch)
	book, _ := args.Get(0).(models.Book)
	return book, args.Bool(1), args.Error(2)
}

func (m *StorageMock) DeleteBook(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
