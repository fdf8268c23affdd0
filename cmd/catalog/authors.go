package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/genre"
)

func newAuthorsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "authors", Short: "Browse and edit authors"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List authors with their book counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			authors, err := a.c.AuthorService.ListWithBookCount(cmd.Context())
			if err != nil {
				return err
			}
			printAuthors(a.out, authors)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show an author and their books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.c.AuthorService.GetWithBooks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res.Author.BookCount = len(res.Books)
			printAuthors(a.out, []author.Author{res.Author})
			a.printf("\n")
			printBooks(a.out, res.Books)
			return nil
		},
	}

	var form author.AuthorForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Add an author (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := a.c.AuthorService.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			a.printf("created author %s\n", created.ID)
			return nil
		},
	}
	authorFlags(create, &form)

	var patch author.AuthorForm
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit an author (admin); unset flags keep the current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.c.AuthorService.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			merged := author.FormFromAuthor(*current)
			if cmd.Flags().Changed("first") {
				merged.FirstName = patch.FirstName
			}
			if cmd.Flags().Changed("last") {
				merged.LastName = patch.LastName
			}
			if cmd.Flags().Changed("born") {
				merged.BirthDate = patch.BirthDate
			}
			updated, err := a.c.AuthorService.Update(cmd.Context(), args[0], merged)
			if err != nil {
				return err
			}
			a.printf("updated author %s\n", updated.ID)
			return nil
		},
	}
	authorFlags(update, &patch)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove an author without books (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			authors, err := a.c.AuthorService.ListWithBookCount(cmd.Context())
			if err != nil {
				return err
			}
			for _, candidate := range authors {
				if candidate.ID != args[0] {
					continue
				}
				res, err := a.c.AuthorService.Delete(cmd.Context(), candidate)
				if err != nil {
					return err
				}
				a.printf("%s\n", res.Message)
				return nil
			}
			return fmt.Errorf("author %s not found", args[0])
		},
	}

	cmd.AddCommand(list, show, create, update, del)
	return cmd
}

func authorFlags(cmd *cobra.Command, f *author.AuthorForm) {
	cmd.Flags().StringVar(&f.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&f.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&f.BirthDate, "born", "", "birth date, YYYY-MM-DD")
}

func newGenresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "genres", Short: "Browse and edit genres"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List genres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			genres, err := a.c.GenreService.List(cmd.Context())
			if err != nil {
				return err
			}
			printGenres(a.out, genres)
			return nil
		},
	}

	books := &cobra.Command{
		Use:   "books ID",
		Short: "List the books tagged with a genre",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("genre id must be a number: %w", err)
			}
			found, err := a.c.BookService.ByGenre(cmd.Context(), id)
			if err != nil {
				return err
			}
			printBooks(a.out, found)
			return nil
		},
	}

	var req genre.GenreRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a genre (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.c.GenreService.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("created genre %d\n", g.ID)
			return nil
		},
	}
	genreFlags(create, &req)

	var patch genre.GenreRequest
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a genre (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("genre id must be a number: %w", err)
			}
			current, err := a.c.GenreService.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			merged := genre.GenreRequest{Name: current.Name, Description: current.Description}
			if cmd.Flags().Changed("name") {
				merged.Name = patch.Name
			}
			if cmd.Flags().Changed("description") {
				merged.Description = patch.Description
			}
			g, err := a.c.GenreService.Update(cmd.Context(), id, merged)
			if err != nil {
				return err
			}
			a.printf("updated genre %d\n", g.ID)
			return nil
		},
	}
	genreFlags(update, &patch)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a genre (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("genre id must be a number: %w", err)
			}
			res, err := a.c.GenreService.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}

	cmd.AddCommand(list, books, create, update, del)
	return cmd
}

func genreFlags(cmd *cobra.Command, r *genre.GenreRequest) {
	cmd.Flags().StringVar(&r.Name, "name", "", "genre name")
	cmd.Flags().StringVar(&r.Description, "description", "", "description")
}
