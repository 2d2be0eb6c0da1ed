// Package router maps the HTTP API onto the service: it holds the route
// table, the user and book handlers, the fallback for unknown endpoints
// and the failure handling every handler falls back on.
package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/patric-chuzhbe/bookshelf/internal/envelope"
	"github.com/patric-chuzhbe/bookshelf/internal/gzippedhttp"
	"github.com/patric-chuzhbe/bookshelf/internal/logger"
	"github.com/patric-chuzhbe/bookshelf/internal/models"
)

const msgEndpointNotFound = "Endpoint not found."

type usersService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserBooks(ctx context.Context, id string) (models.User, []models.Book, error)
	CreateUser(ctx context.Context, input models.UserInput) (models.User, error)
	UpdateUser(ctx context.Context, id string, input models.UserInput) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type booksService interface {
	ListBooks(ctx context.Context) ([]models.Book, error)
	GetBook(ctx context.Context, id string) (models.Book, error)
	CreateBook(ctx context.Context, input models.BookInput) (models.Book, error)
	UpdateBook(ctx context.Context, id string, input models.BookInput) (models.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type libraryService interface {
	usersService
	booksService
	pinger
}

type Router struct {
	service libraryService
}

// New builds the route table. Every request is logged before it is
// matched; unknown paths and unsupported methods answer 404.
func New(service libraryService) *chi.Mux {
	myRouter := Router{
		service: service,
	}

	router := chi.NewRouter()
	router.Use(
		gzippedhttp.UngzipJSONRequest,
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.GzipResponse,
		Recoverer,
		middleware.StripSlashes,
	)
	router.NotFound(myRouter.NotFound)
	router.MethodNotAllowed(myRouter.NotFound)

	router.Get(`/ping`, myRouter.GetPing)

	router.Post(`/users`, myRouter.PostUsers)
	router.Get(`/users`, myRouter.GetUsers)
	router.Get(`/users/{id}`, myRouter.GetUser)
	router.Get(`/users/{id}/books`, myRouter.GetUserBooks)
	router.Put(`/users/{id}`, myRouter.PutUser)
	router.Delete(`/users/{id}`, myRouter.DeleteUser)

	router.Post(`/books`, myRouter.PostBooks)
	router.Get(`/books`, myRouter.GetBooks)
	router.Get(`/books/{id}`, myRouter.GetBook)
	router.Put(`/books/{id}`, myRouter.PutBook)
	router.Delete(`/books/{id}`, myRouter.DeleteBook)

	return router
}

// NotFound answers requests no route matches.
func (router *Router) NotFound(res http.ResponseWriter, req *http.Request) {
	envelope.WriteError(res, http.StatusNotFound, msgEndpointNotFound)
}

// GetPing reports whether the storage is reachable.
func (router *Router) GetPing(res http.ResponseWriter, req *http.Request) {
	if err := router.service.Ping(req.Context()); err != nil {
		fail(res, req, err)
		return
	}

	envelope.WriteSuccess(res, http.StatusOK, models.PingResponse{Storage: "ok"})
}
