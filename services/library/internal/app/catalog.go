package app

import "time"

const (
	adminUsername = "admin"
	adminEmail    = "admin@library.ru"
	adminPassword = "admin123"

	readerUsername  = "reader"
	readerEmail     = "reader@library.ru"
	readerPassword  = "password123"
	readerFirstName = "Ivan"
	readerLastName  = "Reader"

	readerPhone   = "+7 (999) 123-45-67"
	readerAddress = "1 Primernaya St, Moscow"
)

var readerBirthDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

var genreNames = []string{
	"Science Fiction", "Detective", "Novel", "Poetry",
	"Drama", "Comedy", "Adventure", "Historical",
}

type authorSeed struct {
	FirstName string
	LastName  string
	BirthDate time.Time
}

func born(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var authorSeeds = []authorSeed{
	{FirstName: "Leo", LastName: "Tolstoy", BirthDate: born(1828, time.September, 9)},
	{FirstName: "Fyodor", LastName: "Dostoevsky", BirthDate: born(1821, time.November, 11)},
	{FirstName: "Anton", LastName: "Chekhov", BirthDate: born(1860, time.January, 29)},
	{FirstName: "Alexander", LastName: "Pushkin", BirthDate: born(1799, time.June, 6)},
	{FirstName: "Nikolai", LastName: "Gogol", BirthDate: born(1809, time.April, 1)},
	{FirstName: "Mikhail", LastName: "Bulgakov", BirthDate: born(1891, time.May, 15)},
	{FirstName: "Ivan", LastName: "Turgenev", BirthDate: born(1818, time.November, 9)},
	{FirstName: "Alexander", LastName: "Solzhenitsyn", BirthDate: born(1918, time.December, 11)},
}

var bookTitles = []string{
	"War and Peace", "Anna Karenina", "Crime and Punishment",
	"The Idiot", "The Cherry Orchard", "The Lady with the Dog", "Eugene Onegin",
	"The Captain's Daughter", "Dead Souls", "The Government Inspector", "The Master and Margarita",
	"Fathers and Sons", "One Day in the Life of Ivan Denisovich", "A Hero of Our Time",
	"Oblomov", "And Quiet Flows the Don", "Doctor Zhivago", "Heart of a Dog",
}

var publishers = []string{"Eksmo", "AST", "Drofa", "Prosveshchenie", "Azbuka"}

// MaxBooks is the number of distinct titles the catalog can seed.
var MaxBooks = len(bookTitles)
