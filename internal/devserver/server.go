// Package devserver is an in-memory implementation of the catalog REST API.
// cmd/api serves it for local development and the client packages test
// against it through httptest.
package devserver

import (
	"time"

	"github.com/gin-gonic/gin"

	"library-catalog/pkg/jwt"
)

type Options struct {
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	AdminEmail    string
	AdminPassword string
}

type Server struct {
	Store  *Store
	Tokens *jwt.Manager
	Router *gin.Engine
}

// New builds a seeded store, the token manager and the router.
func New(opts Options) (*Server, error) {
	if opts.TokenTTL == 0 {
		opts.TokenTTL = time.Hour
	}

	store := NewStore(opts.BcryptCost)
	if err := Seed(store, opts.AdminEmail, opts.AdminPassword); err != nil {
		return nil, err
	}

	tokens := jwt.NewManager(opts.JWTSecret, opts.TokenTTL)
	return &Server{
		Store:  store,
		Tokens: tokens,
		Router: NewRouter(NewHandler(store, tokens)),
	}, nil
}
