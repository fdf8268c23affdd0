// Package catalog joins independent reads that a screen needs at once.
package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/genre"
)

// BookFormOptions - choices offered by the book create/edit form
type BookFormOptions struct {
	Authors []author.Author
	Genres  []genre.Genre
}

// LoadBookFormOptions fetches authors and selectable genres concurrently.
// One failing read fails the whole load.
func LoadBookFormOptions(ctx context.Context, authors author.Service, genres genre.Service) (*BookFormOptions, error) {
	var opts BookFormOptions

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		opts.Authors, err = authors.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		opts.Genres, err = genres.ListSelectable(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load book form options: %w", err)
	}
	return &opts, nil
}

// BookEditState - an existing book plus the form options, for the edit screen
type BookEditState struct {
	Book    book.Book
	Form    book.BookForm
	Options BookFormOptions
}

// LoadBookEdit reads the book and the form options together.
func LoadBookEdit(ctx context.Context, id string, books book.Service, authors author.Service, genres genre.Service) (*BookEditState, error) {
	var (
		b    *book.Book
		opts *BookFormOptions
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		b, err = books.GetByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		opts, err = LoadBookFormOptions(gctx, authors, genres)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load book %s for edit: %w", id, err)
	}

	return &BookEditState{Book: *b, Form: book.FormFromBook(*b), Options: *opts}, nil
}
