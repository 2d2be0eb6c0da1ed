package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

type userKeeper interface {
	ListUsers(ctx context.Context) ([]models.User, error)

	FindUserByID(ctx context.Context, id string) (models.User, bool, error)

	InsertUser(ctx context.Context, usr *models.User) error

	UpdateUser(
		ctx context.Context,
		id string,
		patch func(usr *models.User),
	) (models.User, bool, error)

	DeleteUser(ctx context.Context, id string) (bool, error)
}

type bookKeeper interface {
	ListBooks(ctx context.Context) ([]models.Book, error)

	FindBookByID(ctx context.Context, id string) (models.Book, bool, error)

	FindBooksByOwner(ctx context.Context, ownerID string) ([]models.Book, error)

	InsertBook(ctx context.Context, book *models.Book) error

	UpdateBook(
		ctx context.Context,
		id string,
		patch func(book *models.Book),
	) (models.Book, bool, error)

	DeleteBook(ctx context.Context, id string) (bool, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	userKeeper
	bookKeeper
	pinger
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidOwnerID  = errors.New("invalid owner id")
	ErrNothingToUpdate = errors.New("no field to update")
)

type Service struct {
	db storage
}

func New(db storage) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.db.ListUsers(ctx)
}

func (s *Service) GetUser(ctx context.Context, id string) (models.User, error) {
	usr, found, err := s.db.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user %q: %w", id, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	return usr, nil
}

// GetUserBooks returns the user together with the books it owns.
func (s *Service) GetUserBooks(ctx context.Context, id string) (models.User, []models.Book, error) {
	usr, err := s.GetUser(ctx, id)
	if err != nil {
		return models.User{}, nil, err
	}

	books, err := s.db.FindBooksByOwner(ctx, id)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("finding books of user %q: %w", id, err)
	}

	return usr, books, nil
}

// CreateUser stores a new user. Fields are not checked for presence.
func (s *Service) CreateUser(ctx context.Context, input models.UserInput) (models.User, error) {
	usr := models.User{
		Name:  input.Name.Ptr(),
		Email: input.Email.Ptr(),
		Age:   input.Age.Ptr(),
	}
	if err := s.db.InsertUser(ctx, &usr); err != nil {
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}

	return usr, nil
}

// UpdateUser merges the non-empty fields of input into the user. An input
// without any non-empty field is rejected before the user is looked up.
func (s *Service) UpdateUser(ctx context.Context, id string, input models.UserInput) (models.User, error) {
	if input.IsEmpty() {
		return models.User{}, ErrNothingToUpdate
	}

	usr, found, err := s.db.UpdateUser(ctx, id, func(usr *models.User) {
		if input.Name.Provided() {
			usr.Name = input.Name.Ptr()
		}
		if input.Email.Provided() {
			usr.Email = input.Email.Ptr()
		}
		if input.Age.Provided() {
			usr.Age = input.Age.Ptr()
		}
	})
	if err != nil {
		return models.User{}, fmt.Errorf("updating user %q: %w", id, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	return usr, nil
}

// DeleteUser removes the user only; its books stay in place.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.db.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting user %q: %w", id, err)
	}
	if !deleted {
		return ErrUserNotFound
	}

	return nil
}

func (s *Service) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.db.ListBooks(ctx)
}

func (s *Service) GetBook(ctx context.Context, id string) (models.Book, error) {
	book, found, err := s.db.FindBookByID(ctx, id)
	if err != nil {
		return models.Book{}, fmt.Errorf("finding book %q: %w", id, err)
	}
	if !found {
		return models.Book{}, ErrBookNotFound
	}

	return book, nil
}

// CreateBook stores a new book if its owner exists. The owner id must be
// sent as a string: {"ownerId":1} does not match user "1".
func (s *Service) CreateBook(ctx context.Context, input models.BookInput) (models.Book, error) {
	if !input.OwnerID.IsString() {
		return models.Book{}, ErrInvalidOwnerID
	}

	book := models.Book{
		Title:    input.Title.Ptr(),
		Price:    input.Price.Ptr(),
		Quantity: input.Quantity.Ptr(),
		OwnerID:  input.OwnerID.String(),
	}

	err := s.db.InsertBook(ctx, &book)
	if errors.Is(err, models.ErrOwnerNotFound) {
		return models.Book{}, ErrInvalidOwnerID
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("inserting book: %w", err)
	}

	return book, nil
}

// UpdateBook merges the non-empty title, price and quantity of input into
// the book. The owner never changes.
func (s *Service) UpdateBook(ctx context.Context, id string, input models.BookInput) (models.Book, error) {
	if input.IsEmpty() {
		return models.Book{}, ErrNothingToUpdate
	}

	book, found, err := s.db.UpdateBook(ctx, id, func(book *models.Book) {
		if input.Title.Provided() {
			book.Title = input.Title.Ptr()
		}
		if input.Price.Provided() {
			book.Price = input.Price.Ptr()
		}
		if input.Quantity.Provided() {
			book.Quantity = input.Quantity.Ptr()
		}
	})
	if err != nil {
		return models.Book{}, fmt.Errorf("updating book %q: %w", id, err)
	}
	if !found {
		return models.Book{}, ErrBookNotFound
	}

	return book, nil
}

func (s *Service) DeleteBook(ctx context.Context, id string) error {
	deleted, err := s.db.DeleteBook(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting book %q: %w", id, err)
	}
	if !deleted {
		return ErrBookNotFound
	}

	return nil
}
