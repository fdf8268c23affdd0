package service

import (
	"context"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/policy"
	types "library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

// BookService - implements book.Service
type BookService struct {
	repo   book.Repository
	actors policy.ActorSource
}

// NewService - Constructor with DI
func NewService(repo book.Repository, actors policy.ActorSource) book.Service {
	return &BookService{repo: repo, actors: actors}
}

func (s *BookService) List(ctx context.Context) ([]book.Book, error) {
	if err := s.authorize(policy.OpList); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *BookService) GetByID(ctx context.Context, id string) (*book.Book, error) {
	if err := s.authorize(policy.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Filter delegates to the server and returns its ordering untouched.
func (s *BookService) Filter(ctx context.Context, f book.Filter) ([]book.Book, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(policy.OpList); err != nil {
		return nil, err
	}
	if f.IsEmpty() {
		return s.repo.List(ctx)
	}
	return s.repo.Filter(ctx, f)
}

func (s *BookService) ByGenre(ctx context.Context, genreID int) ([]book.Book, error) {
	if err := s.authorize(policy.OpList); err != nil {
		return nil, err
	}
	return s.repo.ByGenre(ctx, genreID)
}

func (s *BookService) Create(ctx context.Context, form book.BookForm) (*book.Book, error) {
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
	logger.Info("book created", map[string]interface{}{"book_id": created.ID, "title": created.Title})
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id string, form book.BookForm) (*book.Book, error) {
	req, err := form.ToRequest()
	if err != nil {
		return nil, err
	}
	if err := s.authorize(policy.OpUpdate); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	logger.Info("book updated", map[string]interface{}{"book_id": id})
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id string) (*types.Confirmation, error) {
	if err := s.authorize(policy.OpDelete); err != nil {
		return nil, err
	}

	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("book deleted", map[string]interface{}{"book_id": id})
	return res, nil
}

func (s *BookService) authorize(op policy.Operation) error {
	return policy.Authorize(s.actors.Actor(), op, policy.EntityBook, "")
}
