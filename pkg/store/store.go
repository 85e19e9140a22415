package store

import (
	"errors"

	"librarysite/pkg/domain"
)

var (
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("store: unique constraint violated")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("store: record not found")
)

// LibraryStore defines persistence operations for the catalog core:
// users, genres, authors and books.
type LibraryStore interface {
	// users
	HasUsername(username string) (bool, error)
	GetUserByUsername(username string) (domain.User, bool, error)
	CreateUser(domain.User) (domain.User, error)
	GetOrCreateUser(username string, defaults domain.User) (domain.User, bool, error)
	DeleteNonSuperusers() (int64, error)
	UserCount() (int, error)

	// genres
	GetOrCreateGenre(name string) (domain.Genre, bool, error)
	ListGenres() ([]domain.Genre, error)
	DeleteAllGenres() (int64, error)
	GenreCount() (int, error)

	// authors
	GetOrCreateAuthor(firstName, lastName string, defaults domain.Author) (domain.Author, bool, error)
	ListAuthors() ([]domain.Author, error)
	DeleteAllAuthors() (int64, error)
	AuthorCount() (int, error)

	// books
	GetOrCreateBook(title string, defaults domain.Book) (domain.Book, bool, error)
	SetBookGenres(bookID int64, genreIDs []int64) error
	ListBooks() ([]domain.Book, error)
	DeleteAllBooks() (int64, error)
	BookCount() (int, error)
}

// ReaderStore is an optional capability for stores that keep reader
// profiles.
type ReaderStore interface {
	GetOrCreateReader(userID int64, defaults domain.Reader) (domain.Reader, bool, error)
	ReaderCount() (int, error)
}

// BookInstanceStore is an optional capability for stores that track
// physical copies of books.
type BookInstanceStore interface {
	CreateBookInstance(domain.BookInstance) (domain.BookInstance, error)
	CountBookInstances(bookID int64) (int, error)
	ListBookInstances() ([]domain.BookInstance, error)
	DeleteAllBookInstances() (int64, error)
	BookInstanceCount() (int, error)
}

// BlogStore defines persistence operations for the blog.
type BlogStore interface {
	CreatePost(domain.Post) (domain.Post, error)
	SavePost(domain.Post) (domain.Post, error)
	GetPost(id int64) (domain.Post, bool, error)
	ListPosts(filter PostFilter) ([]domain.Post, error)

	CreateProduct(domain.Product) (domain.Product, error)
	ListProducts(search string) ([]domain.Product, error)
}

// PostFilter narrows ListPosts. Posts are always returned newest first.
type PostFilter struct {
	// Published, when set, keeps only posts whose flag matches.
	Published *bool
	// Search matches title or content, case-insensitively.
	Search string
}

// Features toggles optional entity types regardless of what the store
// implements.
type Features struct {
	Readers       bool
	BookInstances bool
}

// AllFeatures enables every optional entity type.
func AllFeatures() Features {
	return Features{Readers: true, BookInstances: true}
}

// Capabilities holds the optional entity handles resolved for a store.
// A nil field means the entity type is absent.
type Capabilities struct {
	Readers   ReaderStore
	Instances BookInstanceStore
}

// ResolveCapabilities probes s for optional entity types once, honoring
// the feature toggles.
func ResolveCapabilities(s LibraryStore, features Features) Capabilities {
	var caps Capabilities
	if features.Readers {
		if rs, ok := s.(ReaderStore); ok {
			caps.Readers = rs
		}
	}
	if features.BookInstances {
		if is, ok := s.(BookInstanceStore); ok {
			caps.Instances = is
		}
	}
	return caps
}
