// Package grouping links the sections of a course that must be taken together,
// as described by free-text notes such as
//
//	Lecture 001 take one of tutorials 101-102 and one of labs 201-202.
//
// Parsing is best effort, a note it does not understand changes nothing.
package grouping

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"schedulestorm-backend/internal/catalog"
)

var (
	notePattern = regexp.MustCompile(`(?i)^\s*([a-z]+)\s+(\w+)\s+take\s+(.+?)[\s.]*$`)
	andPattern  = regexp.MustCompile(`(?i)\s*,?\s+and\s+`)
	orPattern   = regexp.MustCompile(`(?i)\s+or\s+`)
)

// maxRange bounds how many section numbers a single range may expand to.
const maxRange = 200

// Resolver accumulates section groups for the notes of one course.
// Keys have the form "<TYPE CODE> <SECTION>", ex. "LAB 201".
type Resolver struct {
	groups map[string]int
	// groups of later required slots a section anchors, besides its own
	companions map[string][]int
}

func NewResolver() *Resolver {
	return &Resolver{
		groups:     map[string]int{},
		companions: map[string][]int{},
	}
}

func (r *Resolver) fresh() int {
	highest := 0
	for _, g := range r.groups {
		if g > highest {
			highest = g
		}
	}
	for _, list := range r.companions {
		for _, g := range list {
			if g > highest {
				highest = g
			}
		}
	}
	return highest + 1
}

func (r *Resolver) addCompanion(key string, group int) {
	for _, g := range r.companions[key] {
		if g == group {
			return
		}
	}
	r.companions[key] = append(r.companions[key], group)
}

// Resolve folds one note into the running groups.
//
// The section the note is about becomes the anchor of a new group. Sections of
// the first required slot join the anchor's group, every further slot gets a
// group of its own that the anchor is linked to. A section that is already
// grouped by an earlier note makes its whole slot adopt that existing group.
// A note that names no usable slot changes nothing.
func (r *Resolver) Resolve(note string) {
	m := notePattern.FindStringSubmatch(note)
	if m == nil {
		return
	}
	code, ok := TypeCode(m[1])
	if !ok {
		return
	}
	caller := code + " " + m[2]

	var slots [][]string
	for _, keys := range parseSlots(m[3]) {
		var slotKeys []string
		for _, k := range keys {
			if k != caller {
				slotKeys = append(slotKeys, k)
			}
		}
		if len(slotKeys) > 0 {
			slots = append(slots, slotKeys)
		}
	}
	// a note without a usable slot leaves every linkage as it was
	if len(slots) == 0 {
		return
	}

	anchor := r.fresh()
	r.groups[caller] = anchor

	first := true
	for _, slotKeys := range slots {
		group := 0
		for _, k := range slotKeys {
			if existing, ok := r.groups[k]; ok {
				group = existing
				break
			}
		}
		if group == 0 {
			if first {
				group = anchor
			} else {
				group = r.fresh()
			}
		}

		for _, k := range slotKeys {
			if _, ok := r.groups[k]; !ok {
				r.groups[k] = group
			}
		}
		if first {
			r.groups[caller] = group
		} else if group != r.groups[caller] {
			r.addCompanion(caller, group)
		}
		first = false
	}
}

// Groups returns a copy of the section key -> group number mapping.
func (r *Resolver) Groups() map[string]int {
	out := make(map[string]int, len(r.groups))
	for k, v := range r.groups {
		out[k] = v
	}
	return out
}

// GroupOf renders the group field of a section, "3" for a plain member or
// "1,2" for a section that anchors several slots.
func (r *Resolver) GroupOf(key string) (string, bool) {
	group, ok := r.groups[key]
	if !ok {
		return "", false
	}
	all := append([]int{group}, r.companions[key]...)
	sort.Ints(all)
	rendered := make([]string, len(all))
	for i, g := range all {
		rendered[i] = strconv.Itoa(g)
	}
	return strings.Join(rendered, ","), true
}

// parseSlots splits the fragment after "take" into the section keys of each
// required slot. The slot noun may be plural ("labs 501,502") with or
// without a leading "one of".
func parseSlots(fragments string) [][]string {
	var slots [][]string
	for _, slot := range andPattern.Split(fragments, -1) {
		slot = strings.TrimSpace(slot)
		oneOf := false
		if len(slot) >= 7 && strings.EqualFold(slot[:7], "one of ") {
			oneOf = true
			slot = strings.TrimSpace(slot[7:])
		}

		word, rest := leadingWord(slot)
		if oneOf {
			word = singular(word)
		}
		code, ok := TypeCode(word)
		if !ok {
			code, ok = TypeCode(singular(word))
		}
		if !ok {
			continue
		}

		var keys []string
		for _, alt := range orPattern.Split(rest, -1) {
			for _, n := range expand(alt) {
				keys = append(keys, code+" "+n)
			}
		}
		if len(keys) > 0 {
			slots = append(slots, keys)
		}
	}
	return slots
}

func leadingWord(s string) (string, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end < 0 {
		return s, ""
	}
	return s[:end], strings.TrimSpace(s[end:])
}

// expand turns one alternative into section numbers. An alternative may
// repeat the type name ("Lab 202"), which is dropped.
func expand(alt string) []string {
	alt = strings.Trim(strings.TrimSpace(alt), ".;")
	if word, rest := leadingWord(alt); word != "" && rest != "" {
		alt = rest
	}
	switch {
	case alt == "":
		return nil
	case strings.Contains(alt, "-"):
		return ClassRange(alt)
	case strings.Contains(alt, ","):
		var out []string
		for _, part := range strings.Split(alt, ",") {
			part = strings.TrimSpace(part)
			if isSectionNumber(part) {
				out = append(out, part)
			}
		}
		return out
	}
	fields := strings.Fields(alt)
	if len(fields) == 0 || !isSectionNumber(fields[0]) {
		return nil
	}
	return fields[:1]
}

func isSectionNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ClassRange expands an inclusive numeric range, "505-507" -> 505, 506, 507.
// The width of the start bound is kept so "001-003" -> 001, 002, 003.
// A malformed range expands to nothing.
func ClassRange(r string) []string {
	start, end, ok := strings.Cut(strings.TrimSpace(r), "-")
	if !ok {
		return nil
	}
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)
	from, err := strconv.Atoi(start)
	if err != nil {
		return nil
	}
	to, err := strconv.Atoi(end)
	if err != nil || to < from || to-from >= maxRange {
		return nil
	}

	out := make([]string, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, fmt.Sprintf("%0*d", len(start), n))
	}
	return out
}

// Assign resolves the notes of every course in sections and rewrites the
// group of each section a note mentions. Courses are identified by term,
// subject and course number, sections no note mentions keep their group.
func Assign(sections []catalog.ClassSection) []catalog.ClassSection {
	type course struct{ term, subject, coursenum string }

	resolvers := map[course]*Resolver{}
	for _, s := range sections {
		c := course{s.Term, s.Subject, s.Coursenum}
		r, ok := resolvers[c]
		if !ok {
			r = NewResolver()
			resolvers[c] = r
		}
		if s.Notes != "" {
			r.Resolve(s.Notes)
		}
	}

	out := make([]catalog.ClassSection, len(sections))
	for i, s := range sections {
		if group, ok := resolvers[course{s.Term, s.Subject, s.Coursenum}].GroupOf(s.Key()); ok {
			s.Group = group
		}
		out[i] = s
	}
	return out
}
