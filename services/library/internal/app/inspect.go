package app

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"librarysite/pkg/domain"
	"librarysite/pkg/store"
)

// Inspect prints the catalog in each entity's default order: genres by
// name, authors by last then first name, books by title and copies by
// due-back date with undated copies last.
func Inspect(w io.Writer, s store.LibraryStore, caps store.Capabilities) error {
	if s == nil {
		return errors.New("inspect: store is required")
	}
	out := console{w: w}

	genres, err := s.ListGenres()
	if err != nil {
		return fmt.Errorf("list genres: %w", err)
	}
	genreNames := make(map[int64]string, len(genres))
	out.plain("Genres (%d):", len(genres))
	for _, g := range genres {
		genreNames[g.ID] = g.Name
		out.plain("- %s", g.Name)
	}

	authors, err := s.ListAuthors()
	if err != nil {
		return fmt.Errorf("list authors: %w", err)
	}
	authorNames := make(map[int64]string, len(authors))
	out.plain("Authors (%d):", len(authors))
	for _, a := range authors {
		authorNames[a.ID] = a.FullName()
		out.plain("- %s, %s", a.LastName, a.FirstName)
	}

	books, err := s.ListBooks()
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}
	titles := make(map[int64]string, len(books))
	out.plain("Books (%d):", len(books))
	for _, b := range books {
		titles[b.ID] = b.Title
		names := make([]string, 0, len(b.GenreIDs))
		for _, id := range b.GenreIDs {
			names = append(names, genreNames[id])
		}
		out.plain("- %s by %s [%s] %s", b.Title, authorNames[b.AuthorID], strings.Join(names, ", "), b.ISBN)
	}

	if caps.Instances == nil {
		out.info("Book copies are not available")
		return nil
	}
	instances, err := caps.Instances.ListBookInstances()
	if err != nil {
		return fmt.Errorf("list book copies: %w", err)
	}
	out.plain("Book copies (%d):", len(instances))
	for _, bi := range instances {
		out.plain("- %s %s (%s) due %s", bi.InventoryNumber, titles[bi.BookID], bi.Status, dueLabel(bi))
	}
	return nil
}

func dueLabel(bi domain.BookInstance) string {
	if bi.DueBack == nil {
		return "-"
	}
	return bi.DueBack.Format("2006-01-02")
}
