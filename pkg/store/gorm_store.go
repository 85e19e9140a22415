package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"librarysite/pkg/domain"
)

const migrateLockID int64 = 52817301

// GormStore implements LibraryStore, ReaderStore, BookInstanceStore and
// BlogStore using GORM over Postgres or SQLite.
type GormStore struct {
	db *gorm.DB
}

type GormStoreOptions struct {
	LogLevel gormlogger.LogLevel
}

type GormStoreOption func(*GormStoreOptions)

// WithSQLLogLevel overrides the GORM logger level (Warn by default).
func WithSQLLogLevel(level gormlogger.LogLevel) GormStoreOption {
	return func(opts *GormStoreOptions) {
		opts.LogLevel = level
	}
}

// NewGormStore opens the DB selected by dsn and runs auto-migrations.
// Postgres URLs and key/value DSNs use the postgres driver; "sqlite://",
// "file:" and *.db paths use SQLite with foreign keys enabled.
func NewGormStore(dsn string, options ...GormStoreOption) (*GormStore, error) {
	opts := GormStoreOptions{LogLevel: gormlogger.Warn}
	for _, option := range options {
		if option != nil {
			option(&opts)
		}
	}
	dialector, isPostgres, err := openDialector(dsn)
	if err != nil {
		return nil, err
	}

	gormLog := gormlogger.New(
		log.New(os.Stderr, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  opts.LogLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if !isPostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	migrate := func(tx *gorm.DB) error {
		models := append(append([]any{}, libraryModels...), blogModels...)
		if err := tx.AutoMigrate(models...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}
	if isPostgres {
		err = withMigrationLock(db, migrate)
	} else {
		err = migrate(db)
	}
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func openDialector(dsn string) (gorm.Dialector, bool, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, false, errors.New("database dsn is empty")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "host="):
		return postgres.Open(dsn), true, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(dsn, "sqlite://"))), false, nil
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite3"):
		return sqlite.Open(sqliteDSN(dsn)), false, nil
	}
	return nil, false, fmt.Errorf("unsupported database dsn %q", dsn)
}

// sqliteDSN turns on foreign key enforcement so cascades behave like Postgres.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=1"
	}
	return dsn + "?_foreign_keys=1"
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateErr maps driver errors onto the store sentinels.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

func (s *GormStore) count(model any, conds ...any) (int, error) {
	var count int64
	tx := s.db.Model(model)
	if len(conds) > 0 {
		tx = tx.Where(conds[0], conds[1:]...)
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *GormStore) deleteAll(model any) (int64, error) {
	res := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
	if res.Error != nil {
		return 0, translateErr(res.Error)
	}
	return res.RowsAffected, nil
}

// deleteAllLinked clears the book-genre join table together with model so
// the delete never trips over link rows.
func (s *GormStore) deleteAllLinked(model any) (int64, error) {
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM book_genres").Error; err != nil {
			return err
		}
		res := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, translateErr(err)
	}
	return affected, nil
}

// HasUsername checks if a username is taken.
func (s *GormStore) HasUsername(username string) (bool, error) {
	n, err := s.count(&UserModel{}, "username = ?", username)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) GetUserByUsername(username string) (domain.User, bool, error) {
	var model UserModel
	err := s.db.Where("username = ?", username).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// CreateUser inserts a new user.
func (s *GormStore) CreateUser(u domain.User) (domain.User, error) {
	model := userToModel(u)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.User{}, translateErr(err)
	}
	return userFromModel(model), nil
}

// GetOrCreateUser returns the user with username, creating it from defaults
// when absent.
func (s *GormStore) GetOrCreateUser(username string, defaults domain.User) (domain.User, bool, error) {
	var model UserModel
	err := s.db.Where("username = ?", username).First(&model).Error
	if err == nil {
		return userFromModel(model), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, err
	}
	defaults.Username = username
	created, err := s.CreateUser(defaults)
	if err != nil {
		return domain.User{}, false, err
	}
	return created, true, nil
}

// DeleteNonSuperusers removes every regular account; reader profiles go
// with them through the FK cascade.
func (s *GormStore) DeleteNonSuperusers() (int64, error) {
	res := s.db.Where("is_superuser = ?", false).Delete(&UserModel{})
	if res.Error != nil {
		return 0, translateErr(res.Error)
	}
	return res.RowsAffected, nil
}

// UserCount returns number of users.
func (s *GormStore) UserCount() (int, error) {
	return s.count(&UserModel{})
}

// GetOrCreateGenre finds a genre by name or creates it.
func (s *GormStore) GetOrCreateGenre(name string) (domain.Genre, bool, error) {
	var model GenreModel
	err := s.db.Where("name = ?", name).Order("id ASC").First(&model).Error
	if err == nil {
		return genreFromModel(model), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Genre{}, false, err
	}
	model = GenreModel{Name: name}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Genre{}, false, translateErr(err)
	}
	return genreFromModel(model), true, nil
}

// ListGenres returns genres ordered by name.
func (s *GormStore) ListGenres() ([]domain.Genre, error) {
	var models []GenreModel
	if err := s.db.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Genre, 0, len(models))
	for _, m := range models {
		res = append(res, genreFromModel(m))
	}
	return res, nil
}

// DeleteAllGenres removes every genre and its book links.
func (s *GormStore) DeleteAllGenres() (int64, error) {
	return s.deleteAllLinked(&GenreModel{})
}

func (s *GormStore) GenreCount() (int, error) {
	return s.count(&GenreModel{})
}

// GetOrCreateAuthor finds an author by first and last name or creates one
// from defaults.
func (s *GormStore) GetOrCreateAuthor(firstName, lastName string, defaults domain.Author) (domain.Author, bool, error) {
	var model AuthorModel
	err := s.db.Where("first_name = ? AND last_name = ?", firstName, lastName).Order("id ASC").First(&model).Error
	if err == nil {
		return authorFromModel(model), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Author{}, false, err
	}
	defaults.FirstName = firstName
	defaults.LastName = lastName
	model = authorToModel(defaults)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Author{}, false, translateErr(err)
	}
	return authorFromModel(model), true, nil
}

// ListAuthors returns authors ordered by last name, then first name.
func (s *GormStore) ListAuthors() ([]domain.Author, error) {
	var models []AuthorModel
	if err := s.db.Order("last_name ASC").Order("first_name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Author, 0, len(models))
	for _, m := range models {
		res = append(res, authorFromModel(m))
	}
	return res, nil
}

// DeleteAllAuthors removes every author; books cascade.
func (s *GormStore) DeleteAllAuthors() (int64, error) {
	return s.deleteAllLinked(&AuthorModel{})
}

func (s *GormStore) AuthorCount() (int, error) {
	return s.count(&AuthorModel{})
}

// GetOrCreateBook finds a book by title or creates one from defaults.
// Genre IDs in defaults are ignored; use SetBookGenres.
func (s *GormStore) GetOrCreateBook(title string, defaults domain.Book) (domain.Book, bool, error) {
	var model BookModel
	err := s.db.Preload("Genres").Where("title = ?", title).Order("id ASC").First(&model).Error
	if err == nil {
		return bookFromModel(model), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Book{}, false, err
	}
	defaults.Title = title
	model = bookToModel(defaults)
	if err := s.db.Omit(clause.Associations).Create(&model).Error; err != nil {
		return domain.Book{}, false, translateErr(err)
	}
	return bookFromModel(model), true, nil
}

// SetBookGenres replaces the genre set of a book.
func (s *GormStore) SetBookGenres(bookID int64, genreIDs []int64) error {
	var book BookModel
	if err := s.db.First(&book, "id = ?", bookID).Error; err != nil {
		return translateErr(err)
	}
	assoc := s.db.Model(&book).Omit("Genres.*").Association("Genres")
	if len(genreIDs) == 0 {
		return assoc.Clear()
	}
	var genres []GenreModel
	if err := s.db.Where("id IN ?", genreIDs).Find(&genres).Error; err != nil {
		return err
	}
	if len(genres) != len(uniqueIDs(genreIDs)) {
		return fmt.Errorf("%w: genre", ErrNotFound)
	}
	return translateErr(assoc.Replace(genres))
}

// ListBooks returns books with their genres ordered by title.
func (s *GormStore) ListBooks() ([]domain.Book, error) {
	var models []BookModel
	if err := s.db.Preload("Genres").Order("title ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Book, 0, len(models))
	for _, m := range models {
		res = append(res, bookFromModel(m))
	}
	return res, nil
}

// DeleteAllBooks removes every book; instances and genre links cascade.
func (s *GormStore) DeleteAllBooks() (int64, error) {
	return s.deleteAllLinked(&BookModel{})
}

func (s *GormStore) BookCount() (int, error) {
	return s.count(&BookModel{})
}

// GetOrCreateReader returns the reader profile of userID, creating it from
// defaults when absent.
func (s *GormStore) GetOrCreateReader(userID int64, defaults domain.Reader) (domain.Reader, bool, error) {
	var model ReaderModel
	err := s.db.Where("user_id = ?", userID).First(&model).Error
	if err == nil {
		return readerFromModel(model), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Reader{}, false, err
	}
	defaults.UserID = userID
	if defaults.MembershipDate.IsZero() {
		defaults.MembershipDate = time.Now().UTC()
	}
	model = readerToModel(defaults)
	if err := s.db.Omit(clause.Associations).Create(&model).Error; err != nil {
		return domain.Reader{}, false, translateErr(err)
	}
	return readerFromModel(model), true, nil
}

func (s *GormStore) ReaderCount() (int, error) {
	return s.count(&ReaderModel{})
}

// CreateBookInstance inserts a new copy of a book.
func (s *GormStore) CreateBookInstance(bi domain.BookInstance) (domain.BookInstance, error) {
	if bi.Status == "" {
		bi.Status = domain.InstanceAvailable
	}
	if !bi.Status.Valid() {
		return domain.BookInstance{}, fmt.Errorf("invalid book instance status %q", bi.Status)
	}
	model := bookInstanceToModel(bi)
	if err := s.db.Omit(clause.Associations).Create(&model).Error; err != nil {
		return domain.BookInstance{}, translateErr(err)
	}
	return bookInstanceFromModel(model), nil
}

// CountBookInstances returns how many copies a book has.
func (s *GormStore) CountBookInstances(bookID int64) (int, error) {
	return s.count(&BookInstanceModel{}, "book_id = ?", bookID)
}

// ListBookInstances returns copies ordered by due-back date, copies without
// a date last.
func (s *GormStore) ListBookInstances() ([]domain.BookInstance, error) {
	var models []BookInstanceModel
	if err := s.db.Order("due_back IS NULL").Order("due_back ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.BookInstance, 0, len(models))
	for _, m := range models {
		res = append(res, bookInstanceFromModel(m))
	}
	return res, nil
}

func (s *GormStore) DeleteAllBookInstances() (int64, error) {
	return s.deleteAll(&BookInstanceModel{})
}

func (s *GormStore) BookInstanceCount() (int, error) {
	return s.count(&BookInstanceModel{})
}

// CreatePost inserts a post. CreatedAt defaults to now.
func (s *GormStore) CreatePost(p domain.Post) (domain.Post, error) {
	model := postToModel(p)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Post{}, translateErr(err)
	}
	return postFromModel(model), nil
}

// SavePost updates an existing post and refreshes UpdatedAt.
func (s *GormStore) SavePost(p domain.Post) (domain.Post, error) {
	if p.ID == 0 {
		return domain.Post{}, fmt.Errorf("%w: post id required", ErrNotFound)
	}
	if _, ok, err := s.GetPost(p.ID); err != nil {
		return domain.Post{}, err
	} else if !ok {
		return domain.Post{}, fmt.Errorf("%w: post %d", ErrNotFound, p.ID)
	}
	model := postToModel(p)
	model.UpdatedAt = time.Time{}
	if err := s.db.Save(&model).Error; err != nil {
		return domain.Post{}, translateErr(err)
	}
	return postFromModel(model), nil
}

// GetPost retrieves a post by ID.
func (s *GormStore) GetPost(id int64) (domain.Post, bool, error) {
	var model PostModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Post{}, false, nil
		}
		return domain.Post{}, false, err
	}
	return postFromModel(model), true, nil
}

// ListPosts returns posts matching filter, newest first.
func (s *GormStore) ListPosts(filter PostFilter) ([]domain.Post, error) {
	tx := s.db.Order("created_at DESC").Order("id DESC")
	if filter.Published != nil {
		tx = tx.Where("is_published = ?", *filter.Published)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}
	var models []PostModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Post, 0, len(models))
	for _, m := range models {
		res = append(res, postFromModel(m))
	}
	return res, nil
}

// CreateProduct inserts a product. CreatedAt defaults to now.
func (s *GormStore) CreateProduct(p domain.Product) (domain.Product, error) {
	model := productToModel(p)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Product{}, translateErr(err)
	}
	return productFromModel(model), nil
}

// ListProducts returns products whose name or description matches search,
// newest first.
func (s *GormStore) ListProducts(search string) ([]domain.Product, error) {
	tx := s.db.Order("created_at DESC").Order("id DESC")
	if q := strings.TrimSpace(search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	var models []ProductModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Product, 0, len(models))
	for _, m := range models {
		res = append(res, productFromModel(m))
	}
	return res, nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func dateToModel(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

func dateFromModel(d *datatypes.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

func userToModel(u domain.User) UserModel {
	return UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		IsSuperuser:  u.IsSuperuser,
		IsStaff:      u.IsStaff,
		CreatedAt:    u.CreatedAt,
	}
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		PasswordHash: m.PasswordHash,
		IsSuperuser:  m.IsSuperuser,
		IsStaff:      m.IsStaff,
		CreatedAt:    m.CreatedAt,
	}
}

func genreFromModel(m GenreModel) domain.Genre {
	return domain.Genre{ID: m.ID, Name: m.Name}
}

func authorToModel(a domain.Author) AuthorModel {
	return AuthorModel{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		BirthDate: dateToModel(a.BirthDate),
		DeathDate: dateToModel(a.DeathDate),
		Biography: a.Biography,
	}
}

func authorFromModel(m AuthorModel) domain.Author {
	return domain.Author{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		BirthDate: dateFromModel(m.BirthDate),
		DeathDate: dateFromModel(m.DeathDate),
		Biography: m.Biography,
	}
}

func bookToModel(b domain.Book) BookModel {
	return BookModel{
		ID:              b.ID,
		Title:           b.Title,
		AuthorID:        b.AuthorID,
		Summary:         b.Summary,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Publisher:       b.Publisher,
		Pages:           b.Pages,
	}
}

func bookFromModel(m BookModel) domain.Book {
	genreIDs := make([]int64, 0, len(m.Genres))
	for _, g := range m.Genres {
		genreIDs = append(genreIDs, g.ID)
	}
	return domain.Book{
		ID:              m.ID,
		Title:           m.Title,
		AuthorID:        m.AuthorID,
		GenreIDs:        genreIDs,
		Summary:         m.Summary,
		ISBN:            m.ISBN,
		PublicationYear: m.PublicationYear,
		Publisher:       m.Publisher,
		Pages:           m.Pages,
	}
}

func readerToModel(r domain.Reader) ReaderModel {
	return ReaderModel{
		ID:             r.ID,
		UserID:         r.UserID,
		PhoneNumber:    r.PhoneNumber,
		Address:        r.Address,
		BirthDate:      dateToModel(r.BirthDate),
		MembershipDate: datatypes.Date(r.MembershipDate),
		CardNumber:     r.CardNumber,
	}
}

func readerFromModel(m ReaderModel) domain.Reader {
	return domain.Reader{
		ID:             m.ID,
		UserID:         m.UserID,
		PhoneNumber:    m.PhoneNumber,
		Address:        m.Address,
		BirthDate:      dateFromModel(m.BirthDate),
		MembershipDate: time.Time(m.MembershipDate),
		CardNumber:     m.CardNumber,
	}
}

func bookInstanceToModel(bi domain.BookInstance) BookInstanceModel {
	return BookInstanceModel{
		ID:              bi.ID,
		BookID:          bi.BookID,
		InventoryNumber: bi.InventoryNumber,
		Status:          string(bi.Status),
		DueBack:         dateToModel(bi.DueBack),
	}
}

func bookInstanceFromModel(m BookInstanceModel) domain.BookInstance {
	return domain.BookInstance{
		ID:              m.ID,
		BookID:          m.BookID,
		InventoryNumber: m.InventoryNumber,
		Status:          domain.InstanceStatus(m.Status),
		DueBack:         dateFromModel(m.DueBack),
	}
}

func postToModel(p domain.Post) PostModel {
	return PostModel{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		IsPublished: p.IsPublished,
	}
}

func postFromModel(m PostModel) domain.Post {
	return domain.Post{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		IsPublished: m.IsPublished,
	}
}

func productToModel(p domain.Product) ProductModel {
	return ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.Round(2),
		CreatedAt:   p.CreatedAt,
	}
}

func productFromModel(m ProductModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
	}
}

var (
	_ LibraryStore      = (*GormStore)(nil)
	_ ReaderStore       = (*GormStore)(nil)
	_ BookInstanceStore = (*GormStore)(nil)
	_ BlogStore         = (*GormStore)(nil)
)
