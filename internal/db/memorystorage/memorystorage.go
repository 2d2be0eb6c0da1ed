// Package memorystorage keeps users and books in process memory. Nothing
// survives a restart.
package memorystorage

import (
	"context"
	"slices"
	"sync"

	"github.com/thoas/go-funk"

	"github.com/patric-chuzhbe/bookshelf/internal/db/seed"
	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

// MemoryStorage holds both collections in insertion order. One lock guards
// the collections and their allocators together, so the owner check on
// book creation sees the same users the insert does.
type MemoryStorage struct {
	mu      sync.RWMutex
	users   []models.User
	books   []models.Book
	userIDs *idAllocator
	bookIDs *idAllocator
}

// New builds a storage pre-filled with data. A nil data starts empty.
func New(data *seed.Data) (*MemoryStorage, error) {
	if data == nil {
		data = &seed.Data{}
	}

	users := slices.Clone(data.Users)
	books := slices.Clone(data.Books)

	return &MemoryStorage{
		users:   users,
		books:   books,
		userIDs: newIDAllocator(funk.Map(users, func(usr models.User) string { return usr.ID }).([]string)),
		bookIDs: newIDAllocator(funk.Map(books, func(book models.Book) string { return book.ID }).([]string)),
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (theStorage *MemoryStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	result := make([]models.User, len(theStorage.users))
	copy(result, theStorage.users)

	return result, nil
}

func (theStorage *MemoryStorage) FindUserByID(ctx context.Context, id string) (models.User, bool, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	idx := theStorage.userIndex(id)
	if idx == -1 {
		return models.User{}, false, nil
	}

	return theStorage.users[idx], true, nil
}

// InsertUser assigns the next user id to usr and appends it.
func (theStorage *MemoryStorage) InsertUser(ctx context.Context, usr *models.User) error {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	usr.ID = theStorage.userIDs.allocate()
	theStorage.users = append(theStorage.users, *usr)

	return nil
}

// UpdateUser applies patch to the stored user under the write lock. The id
// is restored after patch runs.
func (theStorage *MemoryStorage) UpdateUser(
	ctx context.Context,
	id string,
	patch func(usr *models.User),
) (models.User, bool, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	idx := theStorage.userIndex(id)
	if idx == -1 {
		return models.User{}, false, nil
	}

	updated := theStorage.users[idx]
	patch(&updated)
	updated.ID = id
	theStorage.users[idx] = updated

	return updated, true, nil
}

// DeleteUser removes the user. Books owned by the user are kept.
func (theStorage *MemoryStorage) DeleteUser(ctx context.Context, id string) (bool, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	idx := theStorage.userIndex(id)
	if idx == -1 {
		return false, nil
	}
	theStorage.users = slices.Delete(theStorage.users, idx, idx+1)

	return true, nil
}

func (theStorage *MemoryStorage) ListBooks(ctx context.Context) ([]models.Book, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	result := make([]models.Book, len(theStorage.books))
	copy(result, theStorage.books)

	return result, nil
}

func (theStorage *MemoryStorage) FindBookByID(ctx context.Context, id string) (models.Book, bool, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	idx := theStorage.bookIndex(id)
	if idx == -1 {
		return models.Book{}, false, nil
	}

	return theStorage.books[idx], true, nil
}

// FindBooksByOwner returns the books whose OwnerID equals ownerID, in
// insertion order. It does not check that the owner exists.
func (theStorage *MemoryStorage) FindBooksByOwner(ctx context.Context, ownerID string) ([]models.Book, error) {
	theStorage.mu.RLock()
	defer theStorage.mu.RUnlock()

	owned, _ := funk.Filter(theStorage.books, func(book models.Book) bool {
		return book.OwnerID == ownerID
	}).([]models.Book)
	if owned == nil {
		owned = []models.Book{}
	}

	return owned, nil
}

// InsertBook assigns the next book id and appends the book, or returns
// models.ErrOwnerNotFound and leaves the collection as it was.
func (theStorage *MemoryStorage) InsertBook(ctx context.Context, book *models.Book) error {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	if theStorage.userIndex(book.OwnerID) == -1 {
		return models.ErrOwnerNotFound
	}

	book.ID = theStorage.bookIDs.allocate()
	theStorage.books = append(theStorage.books, *book)

	return nil
}

// UpdateBook applies patch to the stored book under the write lock. The id
// and the owner are restored after patch runs.
func (theStorage *MemoryStorage) UpdateBook(
	ctx context.Context,
	id string,
	patch func(book *models.Book),
) (models.Book, bool, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	idx := theStorage.bookIndex(id)
	if idx == -1 {
		return models.Book{}, false, nil
	}

	updated := theStorage.books[idx]
	patch(&updated)
	updated.ID = id
	updated.OwnerID = theStorage.books[idx].OwnerID
	theStorage.books[idx] = updated

	return updated, true, nil
}

func (theStorage *MemoryStorage) DeleteBook(ctx context.Context, id string) (bool, error) {
	theStorage.mu.Lock()
	defer theStorage.mu.Unlock()

	idx := theStorage.bookIndex(id)
	if idx == -1 {
		return false, nil
	}
	theStorage.books = slices.Delete(theStorage.books, idx, idx+1)

	return true, nil
}

func (theStorage *MemoryStorage) userIndex(id string) int {
	return slices.IndexFunc(theStorage.users, func(usr models.User) bool { return usr.ID == id })
}

func (theStorage *MemoryStorage) bookIndex(id string) int {
	return slices.IndexFunc(theStorage.books, func(book models.Book) bool { return book.ID == id })
}
