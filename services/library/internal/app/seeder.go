package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"runtime/debug"
	"time"

	"librarysite/pkg/auth"
	"librarysite/pkg/domain"
	"librarysite/pkg/store"
)

// DefaultBooks is the book count used when none is given.
const DefaultBooks = 10

// Config wires a Seeder. Only Store is required; Capabilities should come
// from store.ResolveCapabilities.
type Config struct {
	Store        store.LibraryStore
	Capabilities store.Capabilities
	Out          io.Writer
	Logger       *slog.Logger
	Rand         *rand.Rand
	Now          func() time.Time
	HashPassword func(string) (string, error)
}

// Options are the per-run inputs.
type Options struct {
	Books int
	Clear bool
}

// Seeder populates a library store with a fixed demo catalog.
type Seeder struct {
	store  store.LibraryStore
	caps   store.Capabilities
	out    console
	logger *slog.Logger
	rand   *rand.Rand
	now    func() time.Time
	hash   func(string) (string, error)
}

func New(cfg Config) (*Seeder, error) {
	if cfg.Store == nil {
		return nil, errors.New("seeder: store is required")
	}
	s := &Seeder{
		store:  cfg.Store,
		caps:   cfg.Capabilities,
		out:    console{w: cfg.Out},
		logger: cfg.Logger,
		rand:   cfg.Rand,
		now:    cfg.Now,
		hash:   cfg.HashPassword,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.rand == nil {
		seed := uint64(time.Now().UnixNano())
		s.rand = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.hash == nil {
		s.hash = auth.HashPassword
	}
	return s, nil
}

// Run executes one seeding pass. Failures are contained and reported in
// the returned Report; Run never panics or returns an error.
func (s *Seeder) Run(opts Options) Report {
	rep := &Report{}
	s.out.banner("STARTING DEMO DATA GENERATION")
	s.logger.Info("seed started", "books", opts.Books, "clear", opts.Clear,
		"readers", s.caps.Readers != nil, "book_instances", s.caps.Instances != nil)

	if opts.Clear {
		s.clear(rep)
	}
	s.guard(rep, func() error { return s.seed(opts, rep) })

	s.logger.Info("seed finished",
		"outcomes", len(rep.Outcomes),
		"failed", len(rep.Failed()),
		"warnings", len(rep.Warnings),
		"aborted", rep.Err != nil)
	return *rep
}

// guard is the outermost handler: errors and panics from fn are logged
// once with a stack trace and stored on the report.
func (s *Seeder) guard(rep *Report, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			rep.Err = fmt.Errorf("panic: %v", r)
			s.logger.Error("seed aborted", "err", rep.Err, "stack", string(debug.Stack()))
			s.out.err("Error: %v", rep.Err)
		}
	}()
	if err := fn(); err != nil {
		rep.Err = err
		s.logger.Error("seed aborted", "err", err, "stack", string(debug.Stack()))
		s.out.err("Error: %v", err)
	}
}

// clear deletes demo data in dependency order. Each step is best effort.
func (s *Seeder) clear(rep *Report) {
	s.out.warn("Clearing existing data...")
	type step struct {
		label string
		run   func() (int64, error)
	}
	var steps []step
	if s.caps.Instances != nil {
		steps = append(steps, step{"book instances", s.caps.Instances.DeleteAllBookInstances})
	}
	steps = append(steps,
		step{"books", s.store.DeleteAllBooks},
		step{"authors", s.store.DeleteAllAuthors},
		step{"genres", s.store.DeleteAllGenres},
		step{"non-superuser users", s.store.DeleteNonSuperusers},
	)

	before := len(rep.Warnings)
	for _, st := range steps {
		n, err := s.runClearStep(st.run)
		if err != nil {
			msg := fmt.Sprintf("could not clear %s: %v", st.label, err)
			rep.Warnings = append(rep.Warnings, msg)
			s.logger.Warn("clear step failed", "target", st.label, "err", err)
			s.out.warn("Could not clear %s: %v", st.label, err)
			continue
		}
		s.logger.Debug("cleared", "target", st.label, "rows", n)
	}
	if len(rep.Warnings) == before {
		s.out.ok("Existing data cleared")
	}
}

func (s *Seeder) runClearStep(fn func() (int64, error)) (n int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}

func (s *Seeder) seed(opts Options, rep *Report) error {
	if err := s.ensureSuperuser(rep); err != nil {
		return err
	}
	testUser, err := s.ensureTestUser(rep)
	if err != nil {
		return err
	}
	genres := s.createGenres(rep)
	authors := s.createAuthors(rep)
	books := s.createBooks(opts.Books, authors, genres, rep)
	s.createReader(testUser, rep)
	s.createBookInstances(books, rep)
	return s.printSummary(rep)
}

func (s *Seeder) ensureSuperuser(rep *Report) error {
	exists, err := s.store.HasUsername(adminUsername)
	if err != nil {
		return fmt.Errorf("look up superuser: %w", err)
	}
	if exists {
		rep.add(EntitySuperuser, adminUsername, StatusExisting, nil)
		s.out.info("Superuser already exists")
		return nil
	}
	hash, err := s.hash(adminPassword)
	if err != nil {
		return fmt.Errorf("hash superuser password: %w", err)
	}
	_, err = s.store.CreateUser(domain.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: hash,
		IsSuperuser:  true,
		IsStaff:      true,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create superuser: %w", err)
	}
	rep.add(EntitySuperuser, adminUsername, StatusCreated, nil)
	s.out.ok("Created superuser: %s/%s", adminUsername, adminPassword)
	return nil
}

func (s *Seeder) ensureTestUser(rep *Report) (domain.User, error) {
	hash, err := s.hash(readerPassword)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash test user password: %w", err)
	}
	user, created, err := s.store.GetOrCreateUser(readerUsername, domain.User{
		Email:        readerEmail,
		FirstName:    readerFirstName,
		LastName:     readerLastName,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("create test user: %w", err)
	}
	if created {
		rep.add(EntityUser, readerUsername, StatusCreated, nil)
		s.out.ok("Created test user: %s/%s", readerUsername, readerPassword)
	} else {
		rep.add(EntityUser, readerUsername, StatusExisting, nil)
	}
	return user, nil
}

func (s *Seeder) createGenres(rep *Report) []domain.Genre {
	genres := make([]domain.Genre, 0, len(genreNames))
	for _, name := range genreNames {
		genre, created, err := s.store.GetOrCreateGenre(name)
		if err != nil {
			s.recordFailure(rep, EntityGenre, name, err)
			continue
		}
		genres = append(genres, genre)
		if created {
			rep.add(EntityGenre, name, StatusCreated, nil)
			s.out.ok("Created genre: %s", name)
		} else {
			rep.add(EntityGenre, name, StatusExisting, nil)
		}
	}
	return genres
}

func (s *Seeder) createAuthors(rep *Report) []domain.Author {
	authors := make([]domain.Author, 0, len(authorSeeds))
	for _, seed := range authorSeeds {
		key := seed.FirstName + " " + seed.LastName
		birth := seed.BirthDate
		author, created, err := s.store.GetOrCreateAuthor(seed.FirstName, seed.LastName, domain.Author{BirthDate: &birth})
		if err != nil {
			s.recordFailure(rep, EntityAuthor, key, err)
			continue
		}
		authors = append(authors, author)
		if created {
			rep.add(EntityAuthor, key, StatusCreated, nil)
			s.out.ok("Created author: %s", key)
		} else {
			rep.add(EntityAuthor, key, StatusExisting, nil)
		}
	}
	return authors
}

// createBooks creates up to min(count, MaxBooks) titles and (re)assigns
// each a random sample of 1-3 genres.
func (s *Seeder) createBooks(count int, authors []domain.Author, genres []domain.Genre, rep *Report) []domain.Book {
	n := min(max(count, 0), len(bookTitles))
	books := make([]domain.Book, 0, n)
	for _, title := range bookTitles[:n] {
		if len(authors) == 0 {
			rep.add(EntityBook, title, StatusSkipped, nil)
			s.out.warn("No authors available, skipping book %q", title)
			continue
		}
		pages := between(s.rand, minPages, maxPages)
		defaults := domain.Book{
			AuthorID:        authors[s.rand.IntN(len(authors))].ID,
			Summary:         fmt.Sprintf("A classic work of Russian literature, %q", title),
			ISBN:            bookCode(s.rand),
			PublicationYear: between(s.rand, minPublicationYear, maxPublicationYear),
			Publisher:       publishers[s.rand.IntN(len(publishers))],
			Pages:           &pages,
		}
		book, created, err := s.store.GetOrCreateBook(title, defaults)
		if err != nil {
			s.recordFailure(rep, EntityBook, title, err)
			continue
		}
		if len(genres) > 0 {
			ids := s.sampleGenres(genres)
			if err := s.store.SetBookGenres(book.ID, ids); err != nil {
				s.recordFailure(rep, EntityBookGenres, title, err)
			} else {
				book.GenreIDs = ids
			}
		}
		books = append(books, book)
		if created {
			rep.add(EntityBook, title, StatusCreated, nil)
			s.out.ok("Created book: %q", title)
		} else {
			rep.add(EntityBook, title, StatusExisting, nil)
		}
	}
	return books
}

func (s *Seeder) sampleGenres(genres []domain.Genre) []int64 {
	k := min(between(s.rand, 1, maxGenresPerBook), len(genres))
	ids := make([]int64, 0, k)
	for _, i := range s.rand.Perm(len(genres))[:k] {
		ids = append(ids, genres[i].ID)
	}
	return ids
}

func (s *Seeder) createReader(user domain.User, rep *Report) {
	if s.caps.Readers == nil {
		rep.add(EntityReader, readerUsername, StatusSkipped, nil)
		s.out.info("Reader profiles are not available, skipping")
		return
	}
	birth := readerBirthDate
	_, created, err := s.caps.Readers.GetOrCreateReader(user.ID, domain.Reader{
		PhoneNumber:    readerPhone,
		Address:        readerAddress,
		BirthDate:      &birth,
		MembershipDate: s.now().UTC(),
		CardNumber:     cardNumber(s.rand),
	})
	if err != nil {
		s.recordFailure(rep, EntityReader, readerUsername, err)
		return
	}
	if created {
		rep.add(EntityReader, readerUsername, StatusCreated, nil)
		s.out.ok("Created reader profile")
		return
	}
	rep.add(EntityReader, readerUsername, StatusExisting, nil)
	s.out.info("Reader profile already exists")
}

// createBookInstances tops every book up to a random 1-3 copies. Re-runs
// can therefore add copies; failed copies are skipped individually.
func (s *Seeder) createBookInstances(books []domain.Book, rep *Report) {
	if s.caps.Instances == nil {
		rep.add(EntityBookInstance, "", StatusSkipped, nil)
		s.out.info("Book copies are not available, skipping")
		return
	}
	created := 0
	for _, book := range books {
		existing, err := s.caps.Instances.CountBookInstances(book.ID)
		if err != nil {
			s.recordFailure(rep, EntityBookInstance, book.Title, err)
			continue
		}
		target := between(s.rand, 1, maxCopiesPerBook)
		for i := existing; i < target; i++ {
			now := s.now()
			copyOf := domain.BookInstance{
				BookID:          book.ID,
				InventoryNumber: inventoryNumber(book.ID, now, i),
				Status:          domain.InstanceStatuses[s.rand.IntN(len(domain.InstanceStatuses))],
			}
			if s.rand.Float64() < dueBackChance {
				due := now.UTC().AddDate(0, 0, between(s.rand, 1, maxLoanDays))
				copyOf.DueBack = &due
			}
			if _, err := s.caps.Instances.CreateBookInstance(copyOf); err != nil {
				s.recordFailure(rep, EntityBookInstance, copyOf.InventoryNumber, err)
				continue
			}
			rep.add(EntityBookInstance, copyOf.InventoryNumber, StatusCreated, nil)
			created++
		}
	}
	if created > 0 {
		s.out.ok("Created %d new book copies", created)
	} else {
		s.out.info("All book copies already exist")
	}
}

func (s *Seeder) recordFailure(rep *Report, entity, key string, err error) {
	rep.add(entity, key, StatusFailed, err)
	s.logger.Warn("record skipped", "entity", entity, "key", key, "err", err)
	s.out.warn("Could not create %s %q: %v", entity, key, err)
}

func (s *Seeder) printSummary(rep *Report) error {
	type counter struct {
		label string
		count func() (int, error)
	}
	counters := []counter{
		{"Users", s.store.UserCount},
		{"Authors", s.store.AuthorCount},
		{"Genres", s.store.GenreCount},
		{"Books", s.store.BookCount},
	}
	if s.caps.Readers != nil {
		counters = append(counters, counter{"Readers", s.caps.Readers.ReaderCount})
	}
	if s.caps.Instances != nil {
		counters = append(counters, counter{"Book instances", s.caps.Instances.BookInstanceCount})
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return fmt.Errorf("count %s: %w", c.label, err)
		}
		rep.Counts = append(rep.Counts, Count{Label: c.label, N: n})
	}

	s.out.banner("GENERATION SUMMARY")
	for _, c := range rep.Counts {
		s.out.plain("- %s: %d", c.Label, c.N)
	}
	if failed := len(rep.Failed()); failed > 0 {
		s.out.warn("%d records were skipped after errors", failed)
	}
	s.out.banner("[OK] GENERATION COMPLETE")
	return nil
}
