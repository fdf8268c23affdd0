package service

import (
	"context"

	"library-catalog/internal/domains/genre"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared"
	"library-catalog/pkg/logger"
)

type genreService struct {
	repo   genre.Repository
	actors policy.ActorSource
}

func NewGenreService(repo genre.Repository, actors policy.ActorSource) genre.Service {
	return &genreService{repo: repo, actors: actors}
}

func (s *genreService) List(ctx context.Context) ([]genre.Genre, error) {
	if err := s.authorize(policy.OpList); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *genreService) ListSelectable(ctx context.Context) ([]genre.Genre, error) {
	genres, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return genre.Selectable(genres), nil
}

func (s *genreService) GetByID(ctx context.Context, id int) (*genre.Genre, error) {
	if err := s.authorize(policy.OpRead); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *genreService) Create(ctx context.Context, req genre.GenreRequest) (*genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(policy.OpCreate); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.Normalize())
	if err != nil {
		return nil, err
	}
	logger.Info("genre created", map[string]interface{}{"genre_id": created.ID, "name": created.Name})
	return created, nil
}

func (s *genreService) Update(ctx context.Context, id int, req genre.GenreRequest) (*genre.Genre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorize(policy.OpUpdate); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req.Normalize())
}

func (s *genreService) Delete(ctx context.Context, id int) (*shared.Confirmation, error) {
	if err := s.authorize(policy.OpDelete); err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, id)
}

func (s *genreService) authorize(op policy.Operation) error {
	return policy.Authorize(s.actors.Actor(), op, policy.EntityGenre, "")
}
