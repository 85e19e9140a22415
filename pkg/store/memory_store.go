package store

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"librarysite/pkg/domain"
)

// MemoryStore keeps every entity in-process. It enforces the same unique
// keys and cascades as the SQL schema.
type MemoryStore struct {
	mu sync.RWMutex

	nextID    int64
	users     map[int64]domain.User
	genres    map[int64]domain.Genre
	authors   map[int64]domain.Author
	books     map[int64]domain.Book
	readers   map[int64]domain.Reader
	instances map[int64]domain.BookInstance
	posts     map[int64]domain.Post
	products  map[int64]domain.Product
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[int64]domain.User),
		genres:    make(map[int64]domain.Genre),
		authors:   make(map[int64]domain.Author),
		books:     make(map[int64]domain.Book),
		readers:   make(map[int64]domain.Reader),
		instances: make(map[int64]domain.BookInstance),
		posts:     make(map[int64]domain.Post),
		products:  make(map[int64]domain.Product),
	}
}

func (m *MemoryStore) newID() int64 {
	m.nextID++
	return m.nextID
}

// sortedIDs returns map keys in insertion (ID) order.
func sortedIDs[T any](items map[int64]T) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (m *MemoryStore) HasUsername(username string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.userByName(username)
	return ok, nil
}

func (m *MemoryStore) GetUserByUsername(username string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.userByName(username)
	return u, ok, nil
}

func (m *MemoryStore) userByName(username string) (domain.User, bool) {
	for _, id := range sortedIDs(m.users) {
		if u := m.users[id]; u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

func (m *MemoryStore) CreateUser(u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createUser(u)
}

func (m *MemoryStore) createUser(u domain.User) (domain.User, error) {
	if _, taken := m.userByName(u.Username); taken {
		return domain.User{}, fmt.Errorf("%w: username %q", ErrConflict, u.Username)
	}
	u.ID = m.newID()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) GetOrCreateUser(username string, defaults domain.User) (domain.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.userByName(username); ok {
		return u, false, nil
	}
	defaults.Username = username
	u, err := m.createUser(defaults)
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (m *MemoryStore) DeleteNonSuperusers() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, u := range m.users {
		if u.IsSuperuser {
			continue
		}
		delete(m.users, id)
		for rid, r := range m.readers {
			if r.UserID == id {
				delete(m.readers, rid)
			}
		}
		n++
	}
	return n, nil
}

func (m *MemoryStore) UserCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users), nil
}

func (m *MemoryStore) GetOrCreateGenre(name string) (domain.Genre, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range sortedIDs(m.genres) {
		if g := m.genres[id]; g.Name == name {
			return g, false, nil
		}
	}
	g := domain.Genre{ID: m.newID(), Name: name}
	m.genres[g.ID] = g
	return g, true, nil
}

func (m *MemoryStore) ListGenres() ([]domain.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Genre, 0, len(m.genres))
	for _, id := range sortedIDs(m.genres) {
		res = append(res, m.genres[id])
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (m *MemoryStore) DeleteAllGenres() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.genres))
	m.genres = make(map[int64]domain.Genre)
	for id, b := range m.books {
		b.GenreIDs = nil
		m.books[id] = b
	}
	return n, nil
}

func (m *MemoryStore) GenreCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.genres), nil
}

func (m *MemoryStore) GetOrCreateAuthor(firstName, lastName string, defaults domain.Author) (domain.Author, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range sortedIDs(m.authors) {
		if a := m.authors[id]; a.FirstName == firstName && a.LastName == lastName {
			return a, false, nil
		}
	}
	defaults.ID = m.newID()
	defaults.FirstName = firstName
	defaults.LastName = lastName
	m.authors[defaults.ID] = defaults
	return defaults, true, nil
}

func (m *MemoryStore) ListAuthors() ([]domain.Author, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Author, 0, len(m.authors))
	for _, id := range sortedIDs(m.authors) {
		res = append(res, m.authors[id])
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].LastName != res[j].LastName {
			return res[i].LastName < res[j].LastName
		}
		return res[i].FirstName < res[j].FirstName
	})
	return res, nil
}

func (m *MemoryStore) DeleteAllAuthors() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.authors))
	m.authors = make(map[int64]domain.Author)
	m.deleteBooksLocked(func(domain.Book) bool { return true })
	return n, nil
}

func (m *MemoryStore) AuthorCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.authors), nil
}

func (m *MemoryStore) GetOrCreateBook(title string, defaults domain.Book) (domain.Book, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range sortedIDs(m.books) {
		if b := m.books[id]; b.Title == title {
			return cloneBook(b), false, nil
		}
	}
	if _, ok := m.authors[defaults.AuthorID]; !ok {
		return domain.Book{}, false, fmt.Errorf("%w: author %d", ErrNotFound, defaults.AuthorID)
	}
	for _, b := range m.books {
		if b.ISBN == defaults.ISBN {
			return domain.Book{}, false, fmt.Errorf("%w: isbn %q", ErrConflict, defaults.ISBN)
		}
	}
	defaults.ID = m.newID()
	defaults.Title = title
	defaults.GenreIDs = nil
	m.books[defaults.ID] = defaults
	return cloneBook(defaults), true, nil
}

func (m *MemoryStore) SetBookGenres(bookID int64, genreIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[bookID]
	if !ok {
		return fmt.Errorf("%w: book %d", ErrNotFound, bookID)
	}
	set := make([]int64, 0, len(genreIDs))
	for id := range uniqueIDs(genreIDs) {
		if _, ok := m.genres[id]; !ok {
			return fmt.Errorf("%w: genre %d", ErrNotFound, id)
		}
		set = append(set, id)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	b.GenreIDs = set
	m.books[bookID] = b
	return nil
}

func (m *MemoryStore) ListBooks() ([]domain.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Book, 0, len(m.books))
	for _, id := range sortedIDs(m.books) {
		res = append(res, cloneBook(m.books[id]))
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Title < res[j].Title })
	return res, nil
}

func (m *MemoryStore) DeleteAllBooks() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteBooksLocked(func(domain.Book) bool { return true }), nil
}

// deleteBooksLocked removes matching books and their copies.
func (m *MemoryStore) deleteBooksLocked(match func(domain.Book) bool) int64 {
	var n int64
	for id, b := range m.books {
		if !match(b) {
			continue
		}
		delete(m.books, id)
		for iid, bi := range m.instances {
			if bi.BookID == id {
				delete(m.instances, iid)
			}
		}
		n++
	}
	return n
}

func (m *MemoryStore) BookCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.books), nil
}

func (m *MemoryStore) GetOrCreateReader(userID int64, defaults domain.Reader) (domain.Reader, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.readers {
		if r.UserID == userID {
			return r, false, nil
		}
	}
	if _, ok := m.users[userID]; !ok {
		return domain.Reader{}, false, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	for _, r := range m.readers {
		if r.CardNumber == defaults.CardNumber {
			return domain.Reader{}, false, fmt.Errorf("%w: card number %q", ErrConflict, defaults.CardNumber)
		}
	}
	defaults.ID = m.newID()
	defaults.UserID = userID
	if defaults.MembershipDate.IsZero() {
		defaults.MembershipDate = time.Now().UTC()
	}
	m.readers[defaults.ID] = defaults
	return defaults, true, nil
}

func (m *MemoryStore) ReaderCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.readers), nil
}

func (m *MemoryStore) CreateBookInstance(bi domain.BookInstance) (domain.BookInstance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if bi.Status == "" {
		bi.Status = domain.InstanceAvailable
	}
	if !bi.Status.Valid() {
		return domain.BookInstance{}, fmt.Errorf("invalid book instance status %q", bi.Status)
	}
	if _, ok := m.books[bi.BookID]; !ok {
		return domain.BookInstance{}, fmt.Errorf("%w: book %d", ErrNotFound, bi.BookID)
	}
	for _, existing := range m.instances {
		if existing.InventoryNumber == bi.InventoryNumber {
			return domain.BookInstance{}, fmt.Errorf("%w: inventory number %q", ErrConflict, bi.InventoryNumber)
		}
	}
	bi.ID = m.newID()
	m.instances[bi.ID] = bi
	return bi, nil
}

func (m *MemoryStore) CountBookInstances(bookID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, bi := range m.instances {
		if bi.BookID == bookID {
			n++
		}
	}
	return n, nil
}

// ListBookInstances returns copies ordered by due-back date, copies without
// a date last.
func (m *MemoryStore) ListBookInstances() ([]domain.BookInstance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.BookInstance, 0, len(m.instances))
	for _, id := range sortedIDs(m.instances) {
		res = append(res, m.instances[id])
	}
	sort.SliceStable(res, func(i, j int) bool {
		a, b := res[i].DueBack, res[j].DueBack
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
	return res, nil
}

func (m *MemoryStore) DeleteAllBookInstances() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.instances))
	m.instances = make(map[int64]domain.BookInstance)
	return n, nil
}

func (m *MemoryStore) BookInstanceCount() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances), nil
}

func (m *MemoryStore) CreatePost(p domain.Post) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	p.ID = m.newID()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	m.posts[p.ID] = p
	return p, nil
}

func (m *MemoryStore) SavePost(p domain.Post) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[p.ID]; !ok {
		return domain.Post{}, fmt.Errorf("%w: post %d", ErrNotFound, p.ID)
	}
	p.UpdatedAt = time.Now().UTC()
	m.posts[p.ID] = p
	return p, nil
}

func (m *MemoryStore) GetPost(id int64) (domain.Post, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posts[id]
	return p, ok, nil
}

func (m *MemoryStore) ListPosts(filter PostFilter) ([]domain.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	res := make([]domain.Post, 0, len(m.posts))
	for _, id := range sortedIDs(m.posts) {
		p := m.posts[id]
		if filter.Published != nil && p.IsPublished != *filter.Published {
			continue
		}
		if q != "" && !containsFold(q, p.Title, p.Content) {
			continue
		}
		res = append(res, p)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

func (m *MemoryStore) CreateProduct(p domain.Product) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.newID()
	p.Price = p.Price.Round(2)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *MemoryStore) ListProducts(search string) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(search))
	res := make([]domain.Product, 0, len(m.products))
	for _, id := range sortedIDs(m.products) {
		p := m.products[id]
		if q != "" && !containsFold(q, p.Name, p.Description) {
			continue
		}
		res = append(res, p)
	}
	sort.SliceStable(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID > res[j].ID
	})
	return res, nil
}

func containsFold(lowerNeedle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerNeedle) {
			return true
		}
	}
	return false
}

func cloneBook(b domain.Book) domain.Book {
	b.GenreIDs = append([]int64(nil), b.GenreIDs...)
	return b
}

var (
	_ LibraryStore      = (*MemoryStore)(nil)
	_ ReaderStore       = (*MemoryStore)(nil)
	_ BookInstanceStore = (*MemoryStore)(nil)
	_ BlogStore         = (*MemoryStore)(nil)
)

// Close is a no-op; it lets MemoryStore satisfy Store.
func (m *MemoryStore) Close() error { return nil }
