package main

import (
	"github.com/spf13/cobra"

	"library-catalog/internal/catalog"
	"library-catalog/internal/domains/book"
)

func newBooksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "books", Short: "Browse and edit books"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List every book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			books, err := a.c.BookService.List(cmd.Context())
			if err != nil {
				return err
			}
			printBooks(a.out, books)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.c.BookService.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printBooks(a.out, []book.Book{*b})
			return nil
		},
	}

	var (
		f       book.Filter
		genreID int
	)
	filter := &cobra.Command{
		Use:   "filter",
		Short: "Search, filter and sort on the server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("genre") {
				f.GenreID = &genreID
			}
			books, err := a.c.BookService.Filter(cmd.Context(), f)
			if err != nil {
				return err
			}
			printBooks(a.out, books)
			return nil
		},
	}
	filter.Flags().StringVarP(&f.TitleSubstring, "title", "t", "", "title substring")
	filter.Flags().StringVar(&f.AuthorID, "author", "", "author id")
	filter.Flags().IntVar(&genreID, "genre", 0, "genre id")
	filter.Flags().StringVar(&f.SortBy, "sort", "", "sort key, e.g. title or publishedYear")
	filter.Flags().StringVar(&f.SortOrder, "order", "", "asc or desc")

	var form book.BookForm
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a book (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := a.c.BookService.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			a.printf("created book %s\n", b.ID)
			return nil
		},
	}
	bookFormFlags(create, &form)

	var patch book.BookForm
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a book (admin); unset flags keep the current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := catalog.LoadBookEdit(cmd.Context(), args[0], a.c.BookService, a.c.AuthorService, a.c.GenreService)
			if err != nil {
				return err
			}
			merged := mergeBookForm(cmd, state.Form, patch)
			b, err := a.c.BookService.Update(cmd.Context(), args[0], merged)
			if err != nil {
				return err
			}
			a.printf("updated book %s\n", b.ID)
			return nil
		},
	}
	bookFormFlags(update, &patch)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Remove a book (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.c.BookService.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}

	cmd.AddCommand(list, show, filter, create, update, del,
		newSavedCmd(a, "save ID", "Save a book for the current user"),
		newSavedCmd(a, "unsave ID", "Remove a book from the saved list"),
		newSavedListCmd(a),
	)
	return cmd
}

func bookFormFlags(cmd *cobra.Command, f *book.BookForm) {
	cmd.Flags().StringVar(&f.Title, "title", "", "title")
	cmd.Flags().StringVar(&f.AuthorID, "author", "", "author id")
	cmd.Flags().StringVar(&f.ISBN, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&f.PublishYear, "year", "", "publish year")
	cmd.Flags().StringVar(&f.Price, "price", "", "price")
	cmd.Flags().IntSliceVar(&f.GenreIDs, "genre", nil, "genre ids")
}

func mergeBookForm(cmd *cobra.Command, base, patch book.BookForm) book.BookForm {
	set := cmd.Flags().Changed
	if set("title") {
		base.Title = patch.Title
	}
	if set("author") {
		base.AuthorID = patch.AuthorID
	}
	if set("isbn") {
		base.ISBN = patch.ISBN
	}
	if set("year") {
		base.PublishYear = patch.PublishYear
	}
	if set("price") {
		base.Price = patch.Price
	}
	if set("genre") {
		base.GenreIDs = patch.GenreIDs
	}
	return base
}

func newSavedCmd(a *app, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.c.UserService.Current(cmd.Context())
			if err != nil {
				return err
			}
			// the local set starts empty in a fresh process
			if _, err := a.c.SavedBooks.Refresh(cmd.Context(), me.ID); err != nil {
				return err
			}

			if cmd.Name() == "save" {
				b, err := a.c.SavedBooks.Add(cmd.Context(), me.ID, args[0])
				if err != nil {
					return err
				}
				a.printf("saved %q\n", b.Title)
				return nil
			}

			res, err := a.c.SavedBooks.Remove(cmd.Context(), me.ID, args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}
}

func newSavedListCmd(a *app) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "List saved books (admins may pass --user)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				me, err := a.c.UserService.Current(cmd.Context())
				if err != nil {
					return err
				}
				userID = me.ID
			}
			books, err := a.c.SavedBooks.Refresh(cmd.Context(), userID)
			if err != nil {
				return err
			}
			printBooks(a.out, books)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id")
	return cmd
}
