package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InstanceStatus is the circulation state of a physical book copy.
type InstanceStatus string

const (
	InstanceAvailable   InstanceStatus = "a"
	InstanceMaintenance InstanceStatus = "m"
	InstanceOnLoan      InstanceStatus = "o"
	InstanceReserved    InstanceStatus = "r"
)

// InstanceStatuses lists every valid copy status.
var InstanceStatuses = []InstanceStatus{
	InstanceAvailable,
	InstanceMaintenance,
	InstanceOnLoan,
	InstanceReserved,
}

// Valid reports whether s is one of the known statuses.
func (s InstanceStatus) Valid() bool {
	switch s {
	case InstanceAvailable, InstanceMaintenance, InstanceOnLoan, InstanceReserved:
		return true
	}
	return false
}

// Label returns the human readable status name.
func (s InstanceStatus) Label() string {
	switch s {
	case InstanceAvailable:
		return "Available"
	case InstanceMaintenance:
		return "Maintenance"
	case InstanceOnLoan:
		return "On loan"
	case InstanceReserved:
		return "Reserved"
	}
	return "Unknown"
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"-"`
	IsSuperuser  bool      `json:"isSuperuser"`
	IsStaff      bool      `json:"isStaff"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName joins first and last name, falling back to the username.
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type Author struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	DeathDate *time.Time `json:"deathDate,omitempty"`
	Biography string     `json:"biography,omitempty"`
}

func (a Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	AuthorID        int64   `json:"authorId"`
	GenreIDs        []int64 `json:"genreIds"`
	Summary         string  `json:"summary"`
	ISBN            string  `json:"isbn"`
	PublicationYear int     `json:"publicationYear"`
	Publisher       string  `json:"publisher,omitempty"`
	Pages           *int    `json:"pages,omitempty"`
}

// Reader is the library profile attached one-to-one to a user account.
type Reader struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	PhoneNumber    string     `json:"phoneNumber,omitempty"`
	Address        string     `json:"address,omitempty"`
	BirthDate      *time.Time `json:"birthDate,omitempty"`
	MembershipDate time.Time  `json:"membershipDate"`
	CardNumber     string     `json:"cardNumber"`
}

// BookInstance is one physical copy of a book.
type BookInstance struct {
	ID              int64          `json:"id"`
	BookID          int64          `json:"bookId"`
	InventoryNumber string         `json:"inventoryNumber"`
	Status          InstanceStatus `json:"status"`
	DueBack         *time.Time     `json:"dueBack,omitempty"`
}

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsPublished bool      `json:"isPublished"`
}

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewPost returns a published post stamped with the current time.
func NewPost(title, content string) Post {
	now := time.Now().UTC()
	return Post{
		Title:       title,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
		IsPublished: true,
	}
}
