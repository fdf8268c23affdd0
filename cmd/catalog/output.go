package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/genre"
	"library-catalog/internal/domains/user"
)

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

func printBooks(w io.Writer, books []book.Book) {
	if len(books) == 0 {
		fmt.Fprintln(w, "no books")
		return
	}
	table(w, "ID\tTITLE\tAUTHOR\tYEAR\tPRICE\tGENRES", func(tw *tabwriter.Writer) {
		for _, b := range books {
			year := "-"
			if b.PublishYear != nil {
				year = strconv.Itoa(*b.PublishYear)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				b.ID, b.Title, b.AuthorName, year, b.Price.StringFixed(2), strings.Join(b.GenreNames, ", "))
		}
	})
}

func printAuthors(w io.Writer, authors []author.Author) {
	if len(authors) == 0 {
		fmt.Fprintln(w, "no authors")
		return
	}
	table(w, "ID\tNAME\tBORN\tBOOKS", func(tw *tabwriter.Writer) {
		for _, a := range authors {
			born := "-"
			if t, ok := a.Born(); ok {
				born = t.Format(time.DateOnly)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", a.ID, a.FullName(), born, a.BookCount)
		}
	})
}

func printGenres(w io.Writer, genres []genre.Genre) {
	table(w, "ID\tNAME\tDESCRIPTION", func(tw *tabwriter.Writer) {
		for _, g := range genres {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Name, g.Description)
		}
	})
}

func printUsers(w io.Writer, users []user.User) {
	table(w, "ID\tNAME\tNICK\tEMAIL\tROLE", func(tw *tabwriter.Writer) {
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.NickName, u.Email, u.Role())
		}
	})
}

func sortedFields(fields map[string]string) []string {
	out := make([]string, 0, len(fields))
	for k, v := range fields {
		out = append(out, k+": "+v)
	}
	sort.Strings(out)
	return out
}
