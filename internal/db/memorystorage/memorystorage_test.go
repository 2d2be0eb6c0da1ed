package memorystorage

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/bookshelf/internal/db/seed"
	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

func newSeeded(t *testing.T) *MemoryStorage {
	t.Helper()
	theStorage, err := New(seed.Default())
	require.NoError(t, err)
	return theStorage
}

func Test(t *testing.T) {
	t.Run("The base memorystorage package test", func(t *testing.T) {
		ctx := context.Background()
		theStorage := newSeeded(t)

		usr := models.User{Name: models.StringPtr("Ann")}
		err := theStorage.InsertUser(ctx, &usr)
		assert.NoError(t, err, "The `theStorage.InsertUser()` should not return error")
		assert.Equal(t, "3", usr.ID, "The id should continue after the seeded users")

		found, ok, err := theStorage.FindUserByID(ctx, "3")
		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, usr, found)

		err = theStorage.Ping(ctx)
		assert.NoError(t, err, "The memorystorage.Ping() should not return error")

		err = theStorage.Close()
		assert.NoError(t, err, "The memorystorage.Close() should not return error")
	})
}

func TestNewEmptyStartsAtOne(t *testing.T) {
	ctx := context.Background()
	theStorage, err := New(nil)
	require.NoError(t, err)

	users, err := theStorage.ListUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	usr := models.User{}
	require.NoError(t, theStorage.InsertUser(ctx, &usr))
	assert.Equal(t, "1", usr.ID)
}

func TestAllocatorStartsAfterMaxID(t *testing.T) {
	theStorage, err := New(&seed.Data{
		Users: []models.User{{ID: "4"}, {ID: "11"}, {ID: "2"}},
	})
	require.NoError(t, err)

	usr := models.User{}
	require.NoError(t, theStorage.InsertUser(context.Background(), &usr))
	assert.Equal(t, "12", usr.ID)
}

func TestIDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	previous := 2
	for i := 0; i < 5; i++ {
		book := models.Book{Title: models.StringPtr("book"), OwnerID: "1"}
		require.NoError(t, theStorage.InsertBook(ctx, &book))

		id, err := strconv.Atoi(book.ID)
		require.NoError(t, err)
		assert.Greater(t, id, previous)
		previous = id

		deleted, err := theStorage.DeleteBook(ctx, book.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	}
}

func TestDeleteThenFind(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	deleted, err := theStorage.DeleteUser(ctx, "2")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, found, err := theStorage.FindUserByID(ctx, "2")
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err = theStorage.DeleteUser(ctx, "2")
	require.NoError(t, err)
	assert.False(t, deleted)

	book, found, err := theStorage.FindBookByID(ctx, "2")
	require.NoError(t, err)
	assert.True(t, found, "Books of a deleted user should be kept")
	assert.Equal(t, "2", book.OwnerID)
}

func TestListKeepsInsertionOrderOfSurvivors(t *testing.T) {
	ctx := context.Background()
	theStorage, err := New(nil)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		usr := models.User{Name: models.StringPtr("user" + strconv.Itoa(i))}
		require.NoError(t, theStorage.InsertUser(ctx, &usr))
	}
	for _, id := range []string{"2", "5"} {
		deleted, err := theStorage.DeleteUser(ctx, id)
		require.NoError(t, err)
		require.True(t, deleted)
	}

	users, err := theStorage.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 4)

	var ids []string
	for _, usr := range users {
		ids = append(ids, usr.ID)
	}
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids)
}

func TestInsertBookWithUnknownOwner(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	book := models.Book{Title: models.StringPtr("New"), OwnerID: "99"}
	err := theStorage.InsertBook(ctx, &book)
	assert.ErrorIs(t, err, models.ErrOwnerNotFound)
	assert.Empty(t, book.ID)

	books, err := theStorage.ListBooks(ctx)
	require.NoError(t, err)
	assert.Len(t, books, 2)

	book.OwnerID = "1"
	require.NoError(t, theStorage.InsertBook(ctx, &book))
	assert.Equal(t, "3", book.ID, "A rejected insert should not consume an id")
}

func TestUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	book, found, err := theStorage.UpdateBook(ctx, "1", func(book *models.Book) {
		book.Title = models.StringPtr("Changed")
		book.ID = "100"
		book.OwnerID = "2"
	})
	require.NoError(t, err)
	require.True(t, found)
	want := seed.Default().Books[0]
	want.Title = models.StringPtr("Changed")
	assert.Equal(t, want, book)

	usr, found, err := theStorage.UpdateUser(ctx, "1", func(usr *models.User) {
		usr.Age = models.StringPtr("25")
	})
	require.NoError(t, err)
	require.True(t, found)
	wantUser := seed.Default().Users[0]
	wantUser.Age = models.StringPtr("25")
	assert.Equal(t, wantUser, usr)

	_, found, err = theStorage.UpdateUser(ctx, "42", func(usr *models.User) {})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindBooksByOwner(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	extra := models.Book{Title: models.StringPtr("Second"), OwnerID: "1"}
	require.NoError(t, theStorage.InsertBook(ctx, &extra))

	owned, err := theStorage.FindBooksByOwner(ctx, "1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "Harry Potter", *owned[0].Title)
	assert.Equal(t, "Second", *owned[1].Title)

	owned, err = theStorage.FindBooksByOwner(ctx, "42")
	require.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	users, err := theStorage.ListUsers(ctx)
	require.NoError(t, err)
	users[0].Name = models.StringPtr("Mutated")

	usr, _, err := theStorage.FindUserByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Sunjae", *usr.Name)
}

func TestConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	theStorage := newSeeded(t)

	const workers = 50
	ids := make(chan string, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			usr := models.User{Name: models.StringPtr("concurrent")}
			if err := theStorage.InsertUser(ctx, &usr); err == nil {
				ids <- usr.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
