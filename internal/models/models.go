// Package models holds the records kept by the service together with the
// request and response payloads exchanged over HTTP.
package models

import "errors"

// User is a registered reader. All fields are free text; a nil field was
// never sent and is left out of responses. Stored strings are replaced,
// never written through.
type User struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Age   *string `json:"age,omitempty"`
}

// Book is owned by a User. OwnerID is checked against the users
// collection once, when the book is created.
type Book struct {
	ID       string  `json:"id"`
	Title    *string `json:"title,omitempty"`
	Price    *string `json:"price,omitempty"`
	Quantity *string `json:"quantity,omitempty"`
	OwnerID  string  `json:"ownerId"`
}

// UserInput is the body of POST /users and PUT /users/{id}.
type UserInput struct {
	Name  Text `json:"name"`
	Email Text `json:"email"`
	Age   Text `json:"age"`
}

// IsEmpty reports whether no field carries a value. Falsy values count as
// "not provided", so clearing a field is not possible.
func (in UserInput) IsEmpty() bool {
	return !in.Name.Provided() && !in.Email.Provided() && !in.Age.Provided()
}

// BookInput is the body of POST /books and PUT /books/{id}. OwnerID is
// ignored on update.
type BookInput struct {
	Title    Text `json:"title"`
	Price    Text `json:"price"`
	Quantity Text `json:"quantity"`
	OwnerID  Text `json:"ownerId"`
}

// IsEmpty reports whether none of the updatable fields carries a value.
func (in BookInput) IsEmpty() bool {
	return !in.Title.Provided() && !in.Price.Provided() && !in.Quantity.Provided()
}

type UserResponse struct {
	User User `json:"user"`
}

type UsersResponse struct {
	Users []User `json:"users"`
}

type UserBooksResponse struct {
	User  User   `json:"user"`
	Books []Book `json:"books"`
}

type BookResponse struct {
	Book Book `json:"book"`
}

type BooksResponse struct {
	Books []Book `json:"books"`
}

type PingResponse struct {
	Storage string `json:"storage"`
}

// ErrOwnerNotFound is returned by storages when a book references a user
// that does not exist.
var ErrOwnerNotFound = errors.New("owner not found")
