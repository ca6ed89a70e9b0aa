package aggregate

import (
	"encoding/json"

	"schedulestorm-backend/internal/catalog"
)

// OtherFaculty holds the subjects that have no faculty when a university's
// catalog is grouped by faculty.
const OtherFaculty = "Other"

// Description renders as the course description object, or as `false` when
// the course has none.
type Description struct {
	Value *catalog.CourseDescription
}

func (d Description) MarshalJSON() ([]byte, error) {
	if d.Value == nil {
		return []byte("false"), nil
	}
	return json.Marshal(d.Value)
}

type Course struct {
	Classes     []catalog.ClassSection `json:"classes"`
	Description Description            `json:"description"`
}

// SubjectCourses is coursenum -> course.
type SubjectCourses map[string]*Course

// Catalog is everything a client needs to plan a term at one university.
type Catalog struct {
	// subject -> coursenum -> course
	BySubject map[string]SubjectCourses
	// faculty -> subject -> coursenum -> course, nil unless a subject has a faculty
	ByFaculty map[string]map[string]SubjectCourses
	// teacher -> rating for every teacher that could be matched
	Ratings map[string]catalog.Rating
	// subject -> display name
	Subjects map[string]string
}

// MarshalJSON renders `classes` grouped by faculty when the university has
// faculties and by subject otherwise.
func (c Catalog) MarshalJSON() ([]byte, error) {
	var classes any = c.BySubject
	if c.ByFaculty != nil {
		classes = c.ByFaculty
	}
	return json.Marshal(struct {
		Classes  any                       `json:"classes"`
		Ratings  map[string]catalog.Rating `json:"rmp"`
		Subjects map[string]string         `json:"subjects"`
	}{
		Classes:  classes,
		Ratings:  c.Ratings,
		Subjects: c.Subjects,
	})
}

// UniversityInfo is the summary of one university served by ListUniversities.
type UniversityInfo struct {
	Terms     map[string]string `json:"terms"`
	Locations []string          `json:"locations"`
	Name      string            `json:"name"`
	Rmp       string            `json:"rmp"`
	Scraping  bool              `json:"scraping"`
}
