package catalog

import (
	"strings"
	"time"
)

// Section status values, sources translate their own vocabulary into these.
const (
	StatusOpen     = "Open"
	StatusClosed   = "Closed"
	StatusWaitList = "Wait List"
)

// Term is an academic period offered by a university, `ID` is the
// source's native term code.
type Term struct {
	ID           string    `json:"id" validate:"required"`
	Name         string    `json:"name"`
	Enabled      bool      `json:"enabled"`
	LastModified time.Time `json:"-"`
}

// Subject is a course subject code, `Faculty` is optional and turns on
// faculty grouping for the whole university when any subject has it.
type Subject struct {
	Subject      string            `json:"subject" validate:"required"`
	Name         string            `json:"name,omitempty"`
	Faculty      string            `json:"faculty,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
	LastModified time.Time         `json:"-"`
}

// CourseDescription is the term-invariant calendar entry of a course.
type CourseDescription struct {
	Subject   string `json:"subject" validate:"required"`
	Coursenum string `json:"coursenum" validate:"required"`
	Name      string `json:"name,omitempty"`
	Desc      string `json:"desc,omitempty"`
	Units     string `json:"units,omitempty"`
	Prereq    string `json:"prereq,omitempty"`
	Coreq     string `json:"coreq,omitempty"`
	Antireq   string `json:"antireq,omitempty"`
	Notes     string `json:"notes,omitempty"`
	// hours, aka, repeat, nogpa and whatever else a source publishes
	Extra        map[string]string `json:"extra,omitempty"`
	LastModified time.Time         `json:"-"`
}

// ClassSection is one offering of a course in a term.
type ClassSection struct {
	ID        string   `json:"id" validate:"required"`
	Term      string   `json:"term" validate:"required"`
	Subject   string   `json:"subject" validate:"required"`
	Coursenum string   `json:"coursenum" validate:"required"`
	Section   string   `json:"section,omitempty"`
	Type      string   `json:"type" validate:"required"`
	Status    string   `json:"status" validate:"required,oneof=Open Closed 'Wait List'"`
	Teachers  []string `json:"teachers" validate:"required"`
	Rooms     []string `json:"rooms" validate:"required"`
	Times     []string `json:"times" validate:"required"`
	Location  string   `json:"location" validate:"required"`
	Group     string   `json:"group" validate:"required"`
	Notes     string   `json:"notes,omitempty"`

	Extra        map[string]string `json:"extra,omitempty"`
	LastModified time.Time         `json:"-"`
}

// Key identifies a section by its instruction type and section number
// the way free-text notes refer to it, ex. "LAB 201".
func (c ClassSection) Key() string {
	return c.Type + " " + c.Section
}

// Rating is one entry of the external instructor ratings corpus.
type Rating struct {
	ID         string  `json:"id" validate:"required"`
	FirstName  string  `json:"firstname" validate:"required"`
	MiddleName string  `json:"middlename,omitempty"`
	LastName   string  `json:"lastname" validate:"required"`
	Rating     float64 `json:"rating"`
	Difficulty float64 `json:"difficulty"`
	NumRatings int     `json:"numratings"`
	Department string  `json:"department,omitempty"`
}

// FullName joins the name parts, skipping an empty middle name.
func (r Rating) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.FirstName, r.MiddleName, r.LastName} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
