package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/patric-chuzhbe/bookshelf/internal/envelope"
	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

// PostUsers creates a user from name, email and age. Missing fields are
// stored empty.
func (router *Router) PostUsers(res http.ResponseWriter, req *http.Request) {
	var input models.UserInput
	if err := decodeJSON(req, &input); err != nil {
		fail(res, req, err)
		return
	}

	usr, err := router.service.CreateUser(req.Context(), input)
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusCreated, models.UserResponse{User: usr})
}

func (router *Router) GetUsers(res http.ResponseWriter, req *http.Request) {
	users, err := router.service.ListUsers(req.Context())
	if err != nil {
		fail(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.UsersResponse{Users: users})
}

func (router *Router) GetUser(res http.ResponseWriter, req *http.Request) {
	usr, err := router.service.GetUser(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.UserResponse{User: usr})
}

// GetUserBooks answers with the user and the books it owns.
func (router *Router) GetUserBooks(res http.ResponseWriter, req *http.Request) {
	usr, books, err := router.service.GetUserBooks(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.UserBooksResponse{User: usr, Books: books})
}

// PutUser merges the non-empty fields of the body into the user.
func (router *Router) PutUser(res http.ResponseWriter, req *http.Request) {
	var input models.UserInput
	if err := decodeJSON(req, &input); err != nil {
		fail(res, req, err)
		return
	}

	usr, err := router.service.UpdateUser(req.Context(), chi.URLParam(req, "id"), input)
	if err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.UserResponse{User: usr})
}

func (router *Router) DeleteUser(res http.ResponseWriter, req *http.Request) {
	if err := router.service.DeleteUser(req.Context(), chi.URLParam(req, "id")); err != nil {
		respondWithServiceError(res, req, err)
		return
	}

	envelope.WriteNoContent(res)
}
