package model

import "time"

// Class is one entry of the fixed grade-level catalog. The catalog is
// seeded once by migration and never grows at runtime.
type Class struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassCatalog is the fixed set of 16 grade levels, in school order.
var ClassCatalog = []string{
	"Play", "Nursery", "KG-1", "KG-2",
	"Class 1", "Class 2", "Class 3", "Class 4",
	"Class 5", "Class 6", "Class 7", "Class 8",
	"Class 9", "Class 10", "Class 11", "Class 12",
}

// seniorGrades are the four most senior grades; admissions into them must
// declare a stream.
var seniorGrades = map[string]bool{
	"Class 9":  true,
	"Class 10": true,
	"Class 11": true,
	"Class 12": true,
}

// Streams available to senior-grade students.
const (
	StreamScience  = "Science"
	StreamCommerce = "Commerce"
	StreamArts     = "Arts"
)

// KnownClass reports whether name is part of the catalog.
func KnownClass(name string) bool {
	for _, c := range ClassCatalog {
		if c == name {
			return true
		}
	}
	return false
}

// RequiresStream reports whether admissions into the class must declare a
// stream (Science/Commerce/Arts).
func RequiresStream(className string) bool {
	return seniorGrades[className]
}

// ValidStream reports whether s is a recognized stream name.
func ValidStream(s string) bool {
	return s == StreamScience || s == StreamCommerce || s == StreamArts
}
