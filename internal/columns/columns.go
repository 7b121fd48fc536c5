// Package columns declares the table columns the UI grid renders for books
// and students, including the badge tag each status value is drawn with.
package columns

import (
	"github.com/aanand-mishra/library-proxy/internal/types"
)

// Tag is the semantic colour of a status badge.
type Tag string

const (
	TagSuccess   Tag = "success"
	TagSecondary Tag = "secondary"
	TagError     Tag = "error"
)

// Column maps a record field to a display header. Badges is set only on
// status columns and maps every status value to its tag.
type Column struct {
	AccessorKey string         `json:"accessorKey"`
	Header      string         `json:"header"`
	Badges      map[string]Tag `json:"badges,omitempty"`
}

// Table names accepted by ByTable.
const (
	TableBooks    = "books"
	TableStudents = "students"
)

var bookStatusTags = map[types.BookStatus]Tag{
	types.BookAvailable: TagSuccess,
	types.BookBorrowed:  TagSecondary,
}

var studentStatusTags = map[types.StudentStatus]Tag{
	types.StudentActive:   TagSuccess,
	types.StudentInactive: TagError,
}

// BookStatusTag returns the badge tag for s; ok is false for values outside
// the enum.
func BookStatusTag(s types.BookStatus) (tag Tag, ok bool) {
	tag, ok = bookStatusTags[s]
	return
}

// StudentStatusTag returns the badge tag for s; ok is false for values
// outside the enum.
func StudentStatusTag(s types.StudentStatus) (tag Tag, ok bool) {
	tag, ok = studentStatusTags[s]
	return
}

// Books returns the book table columns.
func Books() []Column {
	badges := make(map[string]Tag, len(types.BookStatuses))
	for _, s := range types.BookStatuses {
		if tag, ok := BookStatusTag(s); ok {
			badges[string(s)] = tag
		}
	}

	return []Column{
		{AccessorKey: "id", Header: "ID"},
		{AccessorKey: "book_name", Header: "Book Name"},
		{AccessorKey: "isbn", Header: "ISBN #"},
		{AccessorKey: "shelf_location", Header: "Shelf Location"},
		{AccessorKey: "author_name", Header: "Author Name"},
		{AccessorKey: "publishers_name", Header: "Publisher Name"},
		{AccessorKey: "year", Header: "Year"},
		{AccessorKey: "status", Header: "Status", Badges: badges},
	}
}

// Students returns the student table columns. full_name is filled in by
// the upstream client from types.Student.FullName when upstream omits it.
func Students() []Column {
	badges := make(map[string]Tag, len(types.StudentStatuses))
	for _, s := range types.StudentStatuses {
		if tag, ok := StudentStatusTag(s); ok {
			badges[string(s)] = tag
		}
	}

	return []Column{
		{AccessorKey: "student_id", Header: "Student ID"},
		{AccessorKey: "full_name", Header: "Full Name"},
		{AccessorKey: "contact_number", Header: "Contact Number"},
		{AccessorKey: "email_address", Header: "Email Address"},
		{AccessorKey: "status", Header: "Status", Badges: badges},
	}
}

// ByTable returns the columns of the named table.
func ByTable(name string) ([]Column, bool) {
	switch name {
	case TableBooks:
		return Books(), true
	case TableStudents:
		return Students(), true
	}
	return nil, false
}
