package catalog

import (
	"database/sql"
	"encoding/json"
	"time"

	"schedulestorm-backend/internal/components/db"
)

func encodeExtra(extra map[string]string) (string, error) {
	if len(extra) == 0 {
		return "{}", nil
	}
	out, err := json.Marshal(extra)
	return string(out), err
}

func decodeExtra(raw string) map[string]string {
	if raw == "" || raw == "{}" {
		return nil
	}
	var out map[string]string
	err := json.Unmarshal([]byte(raw), &out)
	if err != nil {
		return nil
	}
	return out
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	out, err := json.Marshal(list)
	return string(out), err
}

func decodeList(raw string) []string {
	out := []string{}
	_ = json.Unmarshal([]byte(raw), &out)
	return out
}

func nullable(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func termFromRow(row db.Term) Term {
	return Term{
		ID:           row.ID,
		Name:         row.Name,
		Enabled:      row.Enabled,
		LastModified: fromMillis(row.LastModified),
	}
}

func subjectFromRow(row db.Subject) Subject {
	return Subject{
		Subject:      row.Subject,
		Name:         nullable(row.Name),
		Faculty:      nullable(row.Faculty),
		Extra:        decodeExtra(row.Extra),
		LastModified: fromMillis(row.LastModified),
	}
}

func descriptionFromRow(row db.CourseDescription) CourseDescription {
	return CourseDescription{
		Subject:      row.Subject,
		Coursenum:    row.Coursenum,
		Name:         nullable(row.Name),
		Desc:         nullable(row.Description),
		Units:        nullable(row.Units),
		Prereq:       nullable(row.Prereq),
		Coreq:        nullable(row.Coreq),
		Antireq:      nullable(row.Antireq),
		Notes:        nullable(row.Notes),
		Extra:        decodeExtra(row.Extra),
		LastModified: fromMillis(row.LastModified),
	}
}

func sectionFromRow(row db.ClassSection) ClassSection {
	return ClassSection{
		ID:           row.ID,
		Term:         row.Term,
		Subject:      row.Subject,
		Coursenum:    row.Coursenum,
		Section:      nullable(row.Section),
		Type:         row.Type,
		Status:       row.Status,
		Teachers:     decodeList(row.Teachers),
		Rooms:        decodeList(row.Rooms),
		Times:        decodeList(row.Times),
		Location:     row.Location,
		Group:        row.Grp,
		Notes:        nullable(row.Notes),
		Extra:        decodeExtra(row.Extra),
		LastModified: fromMillis(row.LastModified),
	}
}

func ratingFromRow(row db.Rating) Rating {
	return Rating{
		ID:         row.ID,
		FirstName:  row.Firstname,
		MiddleName: row.Middlename,
		LastName:   row.Lastname,
		Rating:     row.Rating,
		Difficulty: row.Difficulty,
		NumRatings: int(row.Numratings),
		Department: row.Department,
	}
}
