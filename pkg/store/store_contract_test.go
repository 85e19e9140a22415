package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"librarysite/pkg/domain"
)

type fullStore interface {
	LibraryStore
	ReaderStore
	BookInstanceStore
	BlogStore
}

func runLibraryContract(t *testing.T, s fullStore) {
	t.Helper()

	admin, created, err := s.GetOrCreateUser("admin", domain.User{PasswordHash: "x", IsSuperuser: true})
	if err != nil || !created {
		t.Fatalf("create admin: created=%v err=%v", created, err)
	}
	reader, _, err := s.GetOrCreateUser("reader", domain.User{PasswordHash: "x", FirstName: "Ivan"})
	if err != nil {
		t.Fatalf("create reader user: %v", err)
	}
	again, created, err := s.GetOrCreateUser("reader", domain.User{PasswordHash: "y", FirstName: "Other"})
	if err != nil || created {
		t.Fatalf("get reader user: created=%v err=%v", created, err)
	}
	if again.ID != reader.ID || again.FirstName != "Ivan" {
		t.Fatalf("expected existing user unchanged, got %+v", again)
	}
	if _, err := s.CreateUser(domain.User{Username: "admin", PasswordHash: "x"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected username conflict, got %v", err)
	}
	if ok, err := s.HasUsername("admin"); err != nil || !ok {
		t.Fatalf("has username admin: ok=%v err=%v", ok, err)
	}
	if u, ok, err := s.GetUserByUsername("admin"); err != nil || !ok || u.ID != admin.ID || !u.IsSuperuser {
		t.Fatalf("get admin: ok=%v err=%v user=%+v", ok, err, u)
	}
	if _, ok, err := s.GetUserByUsername("nobody"); err != nil || ok {
		t.Fatalf("get missing user: ok=%v err=%v", ok, err)
	}

	g1, created, err := s.GetOrCreateGenre("Drama")
	if err != nil || !created {
		t.Fatalf("create genre: created=%v err=%v", created, err)
	}
	if dup, created, err := s.GetOrCreateGenre("Drama"); err != nil || created || dup.ID != g1.ID {
		t.Fatalf("expected existing genre, got %+v created=%v err=%v", dup, created, err)
	}
	g2, _, err := s.GetOrCreateGenre("Comedy")
	if err != nil {
		t.Fatalf("create genre: %v", err)
	}

	born := time.Date(1828, 9, 9, 0, 0, 0, 0, time.UTC)
	author, created, err := s.GetOrCreateAuthor("Leo", "Tolstoy", domain.Author{BirthDate: &born})
	if err != nil || !created {
		t.Fatalf("create author: created=%v err=%v", created, err)
	}
	if author.BirthDate == nil || author.BirthDate.Year() != 1828 {
		t.Fatalf("expected birth date to be kept, got %v", author.BirthDate)
	}
	if _, created, err := s.GetOrCreateAuthor("Leo", "Tolstoy", domain.Author{}); err != nil || created {
		t.Fatalf("expected existing author: created=%v err=%v", created, err)
	}

	pages := 1225
	book, created, err := s.GetOrCreateBook("War and Peace", domain.Book{
		AuthorID:        author.ID,
		Summary:         "s",
		ISBN:            "9785000000001",
		PublicationYear: 1969,
		Pages:           &pages,
	})
	if err != nil || !created {
		t.Fatalf("create book: created=%v err=%v", created, err)
	}
	if _, _, err := s.GetOrCreateBook("Anna Karenina", domain.Book{
		AuthorID:        author.ID,
		ISBN:            "9785000000001",
		PublicationYear: 1970,
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected isbn conflict, got %v", err)
	}
	if err := s.SetBookGenres(book.ID, []int64{g1.ID, g2.ID}); err != nil {
		t.Fatalf("set genres: %v", err)
	}
	books, err := s.ListBooks()
	if err != nil || len(books) != 1 {
		t.Fatalf("list books: %v (%d)", err, len(books))
	}
	if len(books[0].GenreIDs) != 2 {
		t.Fatalf("expected 2 genres, got %v", books[0].GenreIDs)
	}
	if err := s.SetBookGenres(book.ID, []int64{g2.ID}); err != nil {
		t.Fatalf("replace genres: %v", err)
	}
	books, _ = s.ListBooks()
	if len(books[0].GenreIDs) != 1 || books[0].GenreIDs[0] != g2.ID {
		t.Fatalf("expected genre set replaced, got %v", books[0].GenreIDs)
	}

	r, created, err := s.GetOrCreateReader(reader.ID, domain.Reader{CardNumber: "RD-1000", PhoneNumber: "1"})
	if err != nil || !created {
		t.Fatalf("create reader: created=%v err=%v", created, err)
	}
	if r.MembershipDate.IsZero() {
		t.Fatalf("expected membership date to be set")
	}
	if _, _, err := s.GetOrCreateReader(admin.ID, domain.Reader{CardNumber: "RD-1000"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected card number conflict, got %v", err)
	}

	due := time.Now().UTC().AddDate(0, 0, 7)
	if _, err := s.CreateBookInstance(domain.BookInstance{BookID: book.ID, InventoryNumber: "BK-0001-0001", Status: domain.InstanceOnLoan, DueBack: &due}); err != nil {
		t.Fatalf("create instance: %v", err)
	}
	if _, err := s.CreateBookInstance(domain.BookInstance{BookID: book.ID, InventoryNumber: "BK-0001-0001"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected inventory conflict, got %v", err)
	}
	if _, err := s.CreateBookInstance(domain.BookInstance{BookID: book.ID, InventoryNumber: "BK-0001-0002", Status: "z"}); err == nil {
		t.Fatalf("expected invalid status to fail")
	}
	if _, err := s.CreateBookInstance(domain.BookInstance{BookID: book.ID, InventoryNumber: "BK-0001-0003"}); err != nil {
		t.Fatalf("create default status instance: %v", err)
	}
	if n, _ := s.CountBookInstances(book.ID); n != 2 {
		t.Fatalf("expected 2 instances, got %d", n)
	}
	instances, err := s.ListBookInstances()
	if err != nil || len(instances) != 2 {
		t.Fatalf("list instances: %v (%d)", err, len(instances))
	}
	for _, bi := range instances {
		if !bi.Status.Valid() {
			t.Fatalf("stored invalid status %q", bi.Status)
		}
	}

	// user -> reader cascade
	if n, err := s.DeleteNonSuperusers(); err != nil || n != 1 {
		t.Fatalf("delete non superusers: n=%d err=%v", n, err)
	}
	if n, _ := s.ReaderCount(); n != 0 {
		t.Fatalf("expected reader cascade, got %d readers", n)
	}
	if n, _ := s.UserCount(); n != 1 {
		t.Fatalf("expected superuser to survive, got %d users", n)
	}

	// author -> book -> instance cascade
	if _, err := s.DeleteAllAuthors(); err != nil {
		t.Fatalf("delete authors: %v", err)
	}
	if n, _ := s.BookCount(); n != 0 {
		t.Fatalf("expected book cascade, got %d books", n)
	}
	if n, _ := s.BookInstanceCount(); n != 0 {
		t.Fatalf("expected instance cascade, got %d instances", n)
	}
	if _, err := s.DeleteAllGenres(); err != nil {
		t.Fatalf("delete genres: %v", err)
	}
	if n, _ := s.GenreCount(); n != 0 {
		t.Fatalf("expected no genres, got %d", n)
	}
}

func runOrderingContract(t *testing.T, s fullStore) {
	t.Helper()

	for _, name := range []string{"Poetry", "Drama", "Satire"} {
		if _, _, err := s.GetOrCreateGenre(name); err != nil {
			t.Fatalf("create genre %s: %v", name, err)
		}
	}
	genres, err := s.ListGenres()
	if err != nil {
		t.Fatalf("list genres: %v", err)
	}
	if got := genreNames(genres); strings.Join(got, ",") != "Drama,Poetry,Satire" {
		t.Fatalf("genres out of order: %v", got)
	}

	var tolstoy domain.Author
	for _, name := range [][2]string{{"Leo", "Tolstoy"}, {"Anton", "Chekhov"}, {"Aleksey", "Tolstoy"}} {
		a, _, err := s.GetOrCreateAuthor(name[0], name[1], domain.Author{})
		if err != nil {
			t.Fatalf("create author %v: %v", name, err)
		}
		if a.FirstName == "Leo" {
			tolstoy = a
		}
	}
	authors, err := s.ListAuthors()
	if err != nil {
		t.Fatalf("list authors: %v", err)
	}
	var authorOrder []string
	for _, a := range authors {
		authorOrder = append(authorOrder, a.FullName())
	}
	if strings.Join(authorOrder, ",") != "Anton Chekhov,Aleksey Tolstoy,Leo Tolstoy" {
		t.Fatalf("authors out of order: %v", authorOrder)
	}

	var books []domain.Book
	for i, title := range []string{"War and Peace", "Anna Karenina", "Resurrection"} {
		b, _, err := s.GetOrCreateBook(title, domain.Book{AuthorID: tolstoy.ID, ISBN: fmt.Sprintf("978500000010%d", i)})
		if err != nil {
			t.Fatalf("create book %s: %v", title, err)
		}
		books = append(books, b)
	}
	listed, err := s.ListBooks()
	if err != nil {
		t.Fatalf("list books: %v", err)
	}
	var titles []string
	for _, b := range listed {
		titles = append(titles, b.Title)
	}
	if strings.Join(titles, ",") != "Anna Karenina,Resurrection,War and Peace" {
		t.Fatalf("books out of order: %v", titles)
	}

	late := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	early := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	for _, bi := range []domain.BookInstance{
		{BookID: books[0].ID, InventoryNumber: "BK-ORD-NONE"},
		{BookID: books[0].ID, InventoryNumber: "BK-ORD-LATE", Status: domain.InstanceOnLoan, DueBack: &late},
		{BookID: books[1].ID, InventoryNumber: "BK-ORD-EARLY", Status: domain.InstanceOnLoan, DueBack: &early},
	} {
		if _, err := s.CreateBookInstance(bi); err != nil {
			t.Fatalf("create copy %s: %v", bi.InventoryNumber, err)
		}
	}
	instances, err := s.ListBookInstances()
	if err != nil {
		t.Fatalf("list copies: %v", err)
	}
	var numbers []string
	for _, bi := range instances {
		numbers = append(numbers, bi.InventoryNumber)
	}
	if strings.Join(numbers, ",") != "BK-ORD-EARLY,BK-ORD-LATE,BK-ORD-NONE" {
		t.Fatalf("copies out of order: %v", numbers)
	}
}

func genreNames(genres []domain.Genre) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		out = append(out, g.Name)
	}
	return out
}

func runBlogContract(t *testing.T, s BlogStore) {
	t.Helper()

	first := domain.NewPost("First", "hello django")
	first.CreatedAt = time.Now().UTC().Add(-time.Hour)
	first, err := s.CreatePost(first)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	draft := domain.NewPost("Draft", "not yet")
	draft.IsPublished = false
	draft, err = s.CreatePost(draft)
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	second, err := s.CreatePost(domain.NewPost("Second", "redirects"))
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	published := true
	posts, err := s.ListPosts(PostFilter{Published: &published})
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != second.ID || posts[1].ID != first.ID {
		t.Fatalf("expected published posts newest first, got %+v", posts)
	}
	got, ok, err := s.GetPost(draft.ID)
	if err != nil || !ok || got.IsPublished {
		t.Fatalf("get draft: ok=%v err=%v post=%+v", ok, err, got)
	}
	hits, err := s.ListPosts(PostFilter{Search: "DJANGO"})
	if err != nil || len(hits) != 1 || hits[0].ID != first.ID {
		t.Fatalf("search posts: %v %+v", err, hits)
	}

	before := got.UpdatedAt
	got.IsPublished = true
	time.Sleep(5 * time.Millisecond)
	saved, err := s.SavePost(got)
	if err != nil {
		t.Fatalf("save post: %v", err)
	}
	if !saved.UpdatedAt.After(before) {
		t.Fatalf("expected updated_at to move forward: %v -> %v", before, saved.UpdatedAt)
	}
	if _, err := s.SavePost(domain.Post{ID: 999999, Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on save, got %v", err)
	}

	if _, err := s.CreateProduct(domain.Product{Name: "Bookmark", Description: "leather", Price: decimal.RequireFromString("4.50")}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	if _, err := s.CreateProduct(domain.Product{Name: "Lamp", Description: "reading lamp", Price: decimal.RequireFromString("19.999")}); err != nil {
		t.Fatalf("create product: %v", err)
	}
	products, err := s.ListProducts("lamp")
	if err != nil || len(products) != 1 {
		t.Fatalf("search products: %v %+v", err, products)
	}
	if !products[0].Price.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected price rounded to cents, got %s", products[0].Price)
	}
}
