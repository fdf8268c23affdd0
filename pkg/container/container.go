package container

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/config"
	infraKV "library-catalog/internal/infrastructure/kvstore"
	"library-catalog/internal/savedbooks"
	"library-catalog/internal/session"
	"library-catalog/internal/shared/apiclient"
	"library-catalog/pkg/kvstore"

	"library-catalog/internal/domains/author"
	authorRepo "library-catalog/internal/domains/author/repository"
	authorService "library-catalog/internal/domains/author/service"
	"library-catalog/internal/domains/book"
	bookRepo "library-catalog/internal/domains/book/repository"
	bookService "library-catalog/internal/domains/book/service"
	"library-catalog/internal/domains/genre"
	genreRepo "library-catalog/internal/domains/genre/repository"
	genreService "library-catalog/internal/domains/genre/service"
	"library-catalog/internal/domains/user"
	userRepo "library-catalog/internal/domains/user/repository"
	userService "library-catalog/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the client dependency graph. There is exactly one
// Session and every service receives it.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config  *config.Config
	Store   kvstore.Store
	Session *session.Session
	API     *apiclient.Client

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	BookRepo   book.Repository
	AuthorRepo author.Repository
	GenreRepo  genre.Repository
	UserRepo   user.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	BookService   book.Service
	AuthorService author.Service
	GenreService  genre.Service
	UserService   user.Service
	SavedBooks    *savedbooks.Manager
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the graph from configuration and restores the
// persisted session.
//
// Order matters:
// 1. Key-value store (session backend)
// 2. Session
// 3. HTTP client (needs the session as token source and 401 hook)
// 4. Repositories
// 5. Services
func NewContainer(ctx context.Context, cfg *config.Config, opts ...apiclient.Option) (*Container, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg, store, opts...)
}

// Build wires everything on top of an already opened store.
func Build(ctx context.Context, cfg *config.Config, store kvstore.Store, opts ...apiclient.Option) (*Container, error) {
	c := &Container{Config: cfg, Store: store}

	// STEP 1: SESSION
	c.Session = session.New(store, session.Options{
		KeyPrefix:        cfg.Session.KeyPrefix,
		PreemptiveExpiry: cfg.Session.PreemptiveExpiry,
		ExpiryLeeway:     cfg.Session.ExpiryLeeway,
	})
	if err := c.Session.Restore(ctx); err != nil {
		// an unreachable backend must not stop the client; start anonymous
		log.Warn().Err(err).Msg("session restore failed")
	}

	// STEP 2: HTTP CLIENT
	clientOpts := append([]apiclient.Option{
		apiclient.WithTokenSource(c.Session),
		apiclient.WithUnauthorizedHook(c.Session.HandleUnauthorized),
	}, opts...)
	c.API = apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, clientOpts...)

	// STEP 3: REPOSITORIES
	c.BookRepo = bookRepo.NewHTTPRepository(c.API)
	c.AuthorRepo = authorRepo.NewHTTPRepository(c.API)
	c.GenreRepo = genreRepo.NewHTTPRepository(c.API)
	c.UserRepo = userRepo.NewHTTPRepository(c.API)

	// STEP 4: SERVICES
	c.BookService = bookService.NewService(c.BookRepo, c.Session)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Session)
	c.GenreService = genreService.NewGenreService(c.GenreRepo, c.Session)
	c.UserService = userService.NewUserService(c.UserRepo, c.Session)
	c.SavedBooks = savedbooks.NewManager(c.UserRepo, c.Session)
	c.Session.OnChange(c.SavedBooks.OnSessionChange)

	log.Debug().
		Str("api", cfg.API.BaseURL).
		Str("session_backend", cfg.Session.Backend).
		Str("state", c.Session.State().String()).
		Msg("container ready")
	return c, nil
}

func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		return infraKV.NewMemoryStore(), nil
	case config.SessionBackendRedis:
		store := infraKV.NewRedisStore(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := store.Connect(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		return store, nil
	case config.SessionBackendFile:
		store := infraKV.NewFileStore(cfg.Session.FilePath)
		if err := store.Ping(ctx); err != nil {
			return nil, fmt.Errorf("prepare session file: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

// ========================================
// CLEANUP
// ========================================

// Cleanup closes the store when it holds a connection.
func (c *Container) Cleanup() {
	if closer, ok := c.Store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close session store")
		}
	}
}
