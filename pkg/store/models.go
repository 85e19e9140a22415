package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:150;uniqueIndex;not null"`
	Email        string    `gorm:"size:254"`
	FirstName    string    `gorm:"size:150"`
	LastName     string    `gorm:"size:150"`
	PasswordHash string    `gorm:"not null"`
	IsSuperuser  bool      `gorm:"not null;index"`
	IsStaff      bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type AuthorModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"size:100;not null;index:idx_authors_name,priority:2"`
	LastName  string `gorm:"size:100;not null;index:idx_authors_name,priority:1"`
	BirthDate *datatypes.Date
	DeathDate *datatypes.Date
	Biography string `gorm:"type:text"`
}

func (AuthorModel) TableName() string { return "authors" }

type GenreModel struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"size:200;not null;index"`
}

func (GenreModel) TableName() string { return "genres" }

type BookModel struct {
	ID              int64        `gorm:"primaryKey;autoIncrement"`
	Title           string       `gorm:"size:200;not null;index"`
	AuthorID        int64        `gorm:"not null;index"`
	Author          AuthorModel  `gorm:"constraint:OnDelete:CASCADE"`
	Genres          []GenreModel `gorm:"many2many:book_genres;joinForeignKey:BookID;joinReferences:GenreID;constraint:OnDelete:CASCADE"`
	Summary         string       `gorm:"type:text;not null"`
	ISBN            string       `gorm:"column:isbn;size:13;uniqueIndex;not null"`
	PublicationYear int          `gorm:"not null"`
	Publisher       string       `gorm:"size:200"`
	Pages           *int
}

func (BookModel) TableName() string { return "books" }

type ReaderModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	UserID         int64     `gorm:"uniqueIndex;not null"`
	User           UserModel `gorm:"constraint:OnDelete:CASCADE"`
	PhoneNumber    string    `gorm:"size:20"`
	Address        string    `gorm:"type:text"`
	BirthDate      *datatypes.Date
	MembershipDate datatypes.Date `gorm:"not null"`
	CardNumber     string         `gorm:"size:50;uniqueIndex;not null"`
}

func (ReaderModel) TableName() string { return "readers" }

type BookInstanceModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement"`
	BookID          int64           `gorm:"not null;index"`
	Book            BookModel       `gorm:"constraint:OnDelete:CASCADE"`
	InventoryNumber string          `gorm:"size:20;uniqueIndex;not null"`
	Status          string          `gorm:"size:1;not null"`
	DueBack         *datatypes.Date `gorm:"index"`
}

func (BookInstanceModel) TableName() string { return "book_instances" }

type PostModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:200;not null"`
	Content     string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
	IsPublished bool      `gorm:"not null;index"`
}

func (PostModel) TableName() string { return "posts" }

type ProductModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

func (ProductModel) TableName() string { return "products" }

var libraryModels = []any{
	&UserModel{},
	&AuthorModel{},
	&GenreModel{},
	&BookModel{},
	&ReaderModel{},
	&BookInstanceModel{},
}

var blogModels = []any{
	&PostModel{},
	&ProductModel{},
}
