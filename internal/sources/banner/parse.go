package banner

import (
	"errors"
	"fmt"
	"strings"

	"schedulestorm-backend/internal/catalog"
	"schedulestorm-backend/internal/grouping"
	"schedulestorm-backend/lib/htmlutil"
	"schedulestorm-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

const placeholder = "N/A"

// parseTerms reads the term select, every term that is not view only is
// kept along with the most recent view only one.
func parseTerms(doc *goquery.Document) ([]catalog.Term, error) {
	sel := doc.Find("select#term_input_id")
	if sel.Length() == 0 {
		return nil, errors.New("term select not found")
	}

	terms := []catalog.Term{}
	viewOnly := 0
	for _, opt := range htmlutil.SelectOptions(sel) {
		if opt.Value == "" {
			continue
		}
		if strings.Contains(opt.Text, "View only") {
			viewOnly++
			if viewOnly > 1 {
				break
			}
		}
		terms = append(terms, catalog.Term{
			ID:   opt.Value,
			Name: strings.TrimSpace(strings.ReplaceAll(opt.Text, "(View only)", "")),
		})
	}
	return terms, nil
}

func parseSubjects(doc *goquery.Document) ([]catalog.Subject, error) {
	sel := doc.Find("select#subj_id")
	if sel.Length() == 0 {
		return nil, errors.New("subject select not found")
	}

	subjects := []catalog.Subject{}
	for _, opt := range htmlutil.SelectOptions(sel) {
		if opt.Value == "" {
			continue
		}
		subjects = append(subjects, catalog.Subject{
			Subject: opt.Value,
			Name:    opt.Text,
		})
	}
	return subjects, nil
}

type listing struct {
	sections []catalog.ClassSection
	// course names found in section titles
	names []catalog.CourseDescription
	// titles that could not be parsed
	skipped []string
}

func directRows(table *goquery.Selection) *goquery.Selection {
	rows := table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
	if rows.Length() == 0 {
		rows = table.ChildrenFiltered("tr")
	}
	return rows
}

// parseClasses reads a class listing page. The listing is a table of row
// pairs, a title row "<name> - <crn> - <subject> <coursenum> - <section>"
// followed by a detail row holding the campus, notes and meeting times.
func parseClasses(doc *goquery.Document, term string) listing {
	out := listing{}

	table := doc.Find("table.datadisplaytable").First()
	if table.Length() == 0 {
		return out
	}

	var current *catalog.ClassSection
	directRows(table).Each(func(i int, tr *goquery.Selection) {
		if i%2 == 0 {
			current = nil
			title := htmlutil.CleanText(tr.Text())
			section, name, ok := parseTitle(title, term)
			if !ok {
				out.skipped = append(out.skipped, title)
				return
			}
			if name != "" {
				out.names = append(out.names, catalog.CourseDescription{
					Subject:   section.Subject,
					Coursenum: section.Coursenum,
					Name:      name,
				})
			}
			out.sections = append(out.sections, section)
			current = &out.sections[len(out.sections)-1]
			return
		}
		if current == nil {
			return
		}
		parseDetail(tr.ChildrenFiltered("td").First(), current)
	})

	return out
}

func parseTitle(title, term string) (catalog.ClassSection, string, bool) {
	parts := strings.Split(title, " - ")
	if len(parts) < 3 {
		return catalog.ClassSection{}, "", false
	}
	n := len(parts)

	course := strings.Fields(parts[n-2])
	if len(course) < 2 {
		return catalog.ClassSection{}, "", false
	}
	id := strings.ReplaceAll(strings.TrimSpace(parts[n-3]), "-", "")
	if id == "" {
		return catalog.ClassSection{}, "", false
	}

	section := catalog.ClassSection{
		ID:        id,
		Term:      term,
		Subject:   course[0],
		Coursenum: course[1],
		Section:   strings.TrimSpace(parts[n-1]),
		Status:    catalog.StatusOpen,
		Group:     "1",
	}

	// a title repeating the course code belongs to a lab or the like and
	// does not name the course
	name := strings.TrimSpace(strings.Join(parts[:n-3], " - "))
	if strings.Contains(name, section.Subject+" "+section.Coursenum) {
		name = ""
	}
	return section, name, true
}

func parseDetail(td *goquery.Selection, section *catalog.ClassSection) {
	info := td.Clone()
	info.Find("table").Remove()

	var notes []string
	for _, line := range htmlutil.Lines(info) {
		if section.Location == "" && strings.Contains(line, "Campus") {
			section.Location = line
			continue
		}
		if strings.Contains(strings.ToLower(line), " take ") {
			notes = append(notes, line)
		}
	}
	section.Notes = strings.Join(notes, " ")
	if section.Location == "" {
		section.Location = placeholder
	}

	meetings := td.Find("table.datadisplaytable").First()
	if meetings.Length() == 0 {
		section.Type = placeholder
		section.Rooms = []string{placeholder}
		section.Teachers = []string{placeholder}
		section.Times = []string{placeholder}
		return
	}

	seen := map[string]bool{}
	meetings.Find("tr").Each(func(i int, row *goquery.Selection) {
		cols := row.ChildrenFiltered("td")
		// the first row holds the headers
		if i == 0 || cols.Length() == 0 {
			return
		}

		var when, days string
		cols.Each(func(j int, col *goquery.Selection) {
			text := htmlutil.CleanText(col.Text())
			switch j {
			case 1:
				when = strings.NewReplacer(" pm", "PM", " am", "AM").Replace(text)
			case 2:
				days = text
			case 3:
				section.Rooms = append(section.Rooms, text)
			case 5:
				if code, ok := grouping.TypeCode(text); ok {
					section.Type = code
				} else {
					section.Type = text
				}
			case 6:
				for _, teacher := range parseInstructors(text) {
					if !seen[teacher] {
						seen[teacher] = true
						section.Teachers = append(section.Teachers, teacher)
					}
				}
			}
		})
		section.Times = append(section.Times, strings.TrimSpace(days+" "+when))
	})

	if section.Type == "" {
		section.Type = placeholder
	}
	for _, list := range []*[]string{&section.Rooms, &section.Teachers, &section.Times} {
		if len(*list) == 0 {
			*list = []string{placeholder}
		}
	}
}

// parseInstructors splits the instructor column. Banner lists names with
// the given name last, "Hudson Jonathan (P)" becomes "Jonathan Hudson".
func parseInstructors(column string) []string {
	column = strings.ReplaceAll(column, "(P)", "")
	var out []string
	for _, name := range strings.Split(column, ",") {
		words := strings.Fields(name)
		if len(words) == 0 {
			continue
		}
		if textutil.IsPlaceholder(name) {
			out = append(out, strings.TrimSpace(name))
			continue
		}
		reordered := append([]string{words[len(words)-1]}, words[:len(words)-1]...)
		out = append(out, strings.Join(reordered, " "))
	}
	return out
}

var descriptionFields = map[string]string{
	"title":         "name",
	"credithours":   "units",
	"contacthours":  "hours",
	"description":   "desc",
	"grading":       "grading",
	"prerequisites": "prereq",
	"corequisites":  "coreq",
	"note":          "notes",
	"equivalent":    "aka",
}

// parseDescriptions reads the calendar's course xml. Courses are titled by
// subject name ("Computer Science 1620"), resolve maps the name to the
// subject code and courses it cannot map are dropped.
func parseDescriptions(doc *goquery.Document, resolve func(name string) (string, bool)) []catalog.CourseDescription {
	descs := []catalog.CourseDescription{}
	doc.Find("course").Each(func(_ int, course *goquery.Selection) {
		desc := catalog.CourseDescription{Extra: map[string]string{}}
		course.Children().Each(func(_ int, child *goquery.Selection) {
			tag := goquery.NodeName(child)
			text := htmlutil.CleanText(child.Text())
			if tag == "subjectandnumber" {
				words := strings.Fields(text)
				if len(words) < 2 {
					return
				}
				desc.Coursenum = words[len(words)-1]
				if code, ok := resolve(strings.Join(words[:len(words)-1], " ")); ok {
					desc.Subject = code
				}
				return
			}
			field, ok := descriptionFields[tag]
			if !ok || text == "" {
				return
			}
			switch field {
			case "name":
				desc.Name = text
			case "units":
				desc.Units = text
			case "desc":
				desc.Desc = text
			case "prereq":
				desc.Prereq = text
			case "coreq":
				desc.Coreq = text
			case "notes":
				desc.Notes = text
			default:
				desc.Extra[field] = text
			}
		})
		if desc.Subject == "" || desc.Coursenum == "" {
			return
		}
		descs = append(descs, desc)
	})
	return descs
}

func describeSkipped(skipped []string) error {
	return fmt.Errorf("%d unparseable section titles, first: %q", len(skipped), skipped[0])
}
