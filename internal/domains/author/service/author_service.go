package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// authorService implements author.Service interface
type authorService struct {
	repo   author.Repository
	actors policy.ActorSource
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo author.Repository, actors policy.ActorSource) author.Service {
	return &authorService{
		repo:   repo,
		actors: actors,
	}
}

func (s *authorService) List(ctx context.Context) ([]author.Author, error) {
	if err := s.authorize(policy.OpList); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *authorService) ListWithBookCount(ctx context.Context) ([]author.Author, error) {
	if err := s.authorize(policy.OpList); err != nil {
		return nil, err
	}
	return s.repo.ListWithBookCount(ctx)
}

func (s *authorService) GetByID(ctx context.Context, id string) (*author.Author, error) {
	if err := s.authorize(policy.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetBooks(ctx context.Context, id string) ([]book.Book, error) {
	if err := s.authorize(policy.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetBooks(ctx, id)
}

func (s *authorService) GetWithBooks(ctx context.Context, id string) (*author.AuthorWithBooks, error) {
	if err := s.authorize(policy.OpRead); err != nil {
		return nil, err
	}

	var (
		a     *author.Author
		books []book.Book
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		a, err = s.repo.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		books, err = s.repo.GetBooks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load author %s with books: %w", id, err)
	}

	return &author.AuthorWithBooks{Author: *a, Books: books}, nil
}

func (s *authorService) Create(ctx context.Context, form author.AuthorForm) (*author.Author, error) {
	req, err := form.ToRequest()
	if err != nil {
		return nil, err
	}
	if err := s.authorize(policy.OpCreate); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info("author created", map[string]interface{}{"author_id": created.ID})
	return created, nil
}

func (s *authorService) Update(ctx context.Context, id string, form author.AuthorForm) (*author.Author, error) {
	req, err := form.ToRequest()
	if err != nil {
		return nil, err
	}
	if err := s.authorize(policy.OpUpdate); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// Delete - an author that still has books never reaches the API
func (s *authorService) Delete(ctx context.Context, a author.Author) (*shared.Confirmation, error) {
	if err := policy.AuthorizeAuthorDelete(s.actors.Actor(), a.BookCount); err != nil {
		logger.Warn("author delete refused", map[string]interface{}{
			"author_id":  a.ID,
			"book_count": a.BookCount,
			"reason":     err.Error(),
		})
		return nil, err
	}

	res, err := s.repo.Delete(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	logger.Info("author deleted", map[string]interface{}{"author_id": a.ID})
	return res, nil
}

func (s *authorService) authorize(op policy.Operation) error {
	return policy.Authorize(s.actors.Actor(), op, policy.EntityAuthor, "")
}
