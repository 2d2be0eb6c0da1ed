package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/patric-chuzhbe/bookshelf/internal/envelope"
	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

// PostBooks creates a book. The ownerId must name an existing user.
func (router *Router) PostBooks(res http.ResponseWriter, req *http.Request) {
	var input models.BookInput
	if err := decodeJSON(req, &input); err != nil {
		fail(res, req, err)
		return
	}

	book, err := router.service.CreateBook(req.Context(), input)
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusCreated, models.BookResponse{Book: book})
}

func (router *Router) GetBooks(res http.ResponseWriter, req *http.Request) {
	books, err := router.service.ListBooks(req.Context())
	if err != nil {
		fail(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.BooksResponse{Books: books})
}

func (router *Router) GetBook(res http.ResponseWriter, req *http.Request) {
	book, err := router.service.GetBook(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.BookResponse{Book: book})
}

// PutBook merges the non-empty title, price and quantity into the book.
func (router *Router) PutBook(res http.ResponseWriter, req *http.Request) {
	var input models.BookInput
	if err := decodeJSON(req, &input); err != nil {
		fail(res, req, err)
		return
	}

	book, err := router.service.UpdateBook(req.Context(), chi.URLParam(req, "id"), input)
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.BookResponse{Book: book})
}

func (router *Router) DeleteBook(res http.ResponseWriter, req *http.Request) {
	if err := router.service.DeleteBook(req.Context(), chi.URLParam(req, "id")); err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteNoContent(res)
}
