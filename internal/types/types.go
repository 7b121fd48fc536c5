// Package types holds all shared data structures (models) used across
// the application: the library records relayed from the upstream API,
// the envelopes that wrap them, and the narrowed shapes returned to the UI.
//
// Struct tags serve two purposes:
//
//  1. json:"..."     — the wire names used by the upstream API and the UI.
//  2. validate:"..." — rules checked by the go-playground/validator package,
//     both on inbound request bodies and on records received from upstream.
package types

import (
	"encoding/json"
	"strings"
)

// BookStatus is the closed set of circulation states a book can be in.
type BookStatus string

const (
	BookAvailable BookStatus = "available"
	BookBorrowed  BookStatus = "borrowed"
)

// BookStatuses lists every BookStatus value.
var BookStatuses = []BookStatus{BookAvailable, BookBorrowed}

// StudentStatus is the closed set of enrolment states a student can be in.
type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

// StudentStatuses lists every StudentStatus value.
var StudentStatuses = []StudentStatus{StudentActive, StudentInactive}

// Book is a catalogue record owned by the upstream API. Timestamps are kept
// in whatever format the upstream serializes them.
type Book struct {
	ID             int64           `json:"id"`
	BookName       string          `json:"book_name"`
	ISBN           string          `json:"isbn"`
	ShelfLocation  string          `json:"shelf_location"`
	AuthorName     string          `json:"author_name"`
	PublishersName string          `json:"publishers_name"`
	Year           int             `json:"year"            validate:"gte=0"`
	Status         BookStatus      `json:"status"          validate:"oneof=available borrowed"`
	CreatedAt      json.RawMessage `json:"created_at,omitempty"`
	UpdatedAt      json.RawMessage `json:"updated_at,omitempty"`
}

// NewBook is the body accepted by POST /api/books: every Book field
// except the ones the upstream API assigns itself.
type NewBook struct {
	BookName       string     `json:"book_name"       validate:"required"`
	ISBN           string     `json:"isbn"            validate:"required"`
	ShelfLocation  string     `json:"shelf_location"  validate:"required"`
	AuthorName     string     `json:"author_name"     validate:"required"`
	PublishersName string     `json:"publishers_name" validate:"required"`
	Year           int        `json:"year"            validate:"gte=0"`
	Status         BookStatus `json:"status"          validate:"required,oneof=available borrowed"`
}

// ServerOwnedBookFields are the keys a client must not send when creating
// a book; they are stripped before the body is forwarded.
var ServerOwnedBookFields = []string{"id", "created_at", "updated_at"}

// Student is an enrolment record owned by the upstream API.
type Student struct {
	ID            int64           `json:"id"`
	StudentID     string          `json:"student_id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	MiddleName    string          `json:"middle_name"`
	ContactNumber string          `json:"contact_number"`
	EmailAddress  string          `json:"email_address"`
	Status        StudentStatus   `json:"status" validate:"oneof=active inactive"`
	HouseNo       *string         `json:"house_no,omitempty"`
	StreetName    *string         `json:"street_name,omitempty"`
	Barangay      *string         `json:"barangay,omitempty"`
	Municipality  *string         `json:"municipality,omitempty"`
	CreatedAt     json.RawMessage `json:"created_at,omitempty"`
	UpdatedAt     json.RawMessage `json:"updated_at,omitempty"`
}

// FullName joins first, middle and last name, skipping empty parts.
func (s Student) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.FirstName, s.MiddleName, s.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Dashboard holds the summary counters shown on the landing page.
type Dashboard struct {
	TotalBooks       int `json:"total_books"       validate:"gte=0"`
	AvailableBooks   int `json:"available_books"   validate:"gte=0"`
	BorrowedBooks    int `json:"borrowed_books"    validate:"gte=0"`
	TotalStudents    int `json:"total_students"    validate:"gte=0"`
	ActiveStudents   int `json:"active_students"   validate:"gte=0"`
	InactiveStudents int `json:"inactive_students" validate:"gte=0"`
}

// Page is the paginated envelope the upstream API uses for list endpoints.
type Page[T any] struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	TotalPages int `json:"totalPages"`
	TotalItems int `json:"totalItems"`
	Items      []T `json:"items"`
}

// Envelope is the generic envelope the upstream API uses for singular
// resources and for error bodies.
type Envelope[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    T                   `json:"data"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Meta    *Meta               `json:"meta,omitempty"`
}

// Meta is the optional pagination block of an Envelope.
type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Table is the narrowed list shape returned to the UI. Items are relayed
// exactly as the upstream API sent them.
type Table struct {
	TotalPages int             `json:"totalPages"`
	TotalItems int             `json:"totalItems"`
	Items      json.RawMessage `json:"items"`
}
