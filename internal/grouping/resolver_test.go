package grouping

import (
	"testing"

	"schedulestorm-backend/internal/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResolveTwoSlots(t *testing.T) {
	r := NewResolver()
	r.Resolve("Lecture 001 take one of tutorials 101-102 and one of labs 201-202.")

	expected := map[string]int{
		"LEC 001": 1,
		"TUT 101": 1,
		"TUT 102": 1,
		"LAB 201": 2,
		"LAB 202": 2,
	}
	if diff := cmp.Diff(expected, r.Groups()); diff != "" {
		t.Fatal(diff)
	}

	group, ok := r.GroupOf("LEC 001")
	require.True(t, ok)
	require.Equal(t, "1,2", group)
	group, _ = r.GroupOf("LAB 202")
	require.Equal(t, "2", group)
}

func TestResolvePropagatesExistingGroup(t *testing.T) {
	r := NewResolver()
	r.Resolve("Lecture 001 take one of tutorials 101-102 and one of labs 201-202.")
	r.Resolve("Lecture 002 take one of tutorials 101-102 and one of labs 201-202.")

	groups := r.Groups()
	require.Equal(t, groups["LEC 001"], groups["LEC 002"])

	distinct := map[int]bool{}
	for _, g := range groups {
		distinct[g] = true
	}
	require.Len(t, distinct, 2)

	group, _ := r.GroupOf("LEC 002")
	require.Equal(t, "1,2", group)
}

func TestResolveAlternatives(t *testing.T) {
	r := NewResolver()
	r.Resolve("Lecture 01 take Lab 05 or Lab 07")
	r.Resolve("Seminar 1 take tutorial 3, 4, 6")

	expected := map[string]int{
		"LEC 01": 1,
		"LAB 05": 1,
		"LAB 07": 1,
		"SEM 1":  2,
		"TUT 3":  2,
		"TUT 4":  2,
		"TUT 6":  2,
	}
	if diff := cmp.Diff(expected, r.Groups()); diff != "" {
		t.Fatal(diff)
	}
}

func TestResolveIgnoresUnparseable(t *testing.T) {
	r := NewResolver()
	for _, note := range []string{
		"",
		"Students must register in all components.",
		"Colloquium 01 take one of labs 201-202.",
		"Lecture 01 take one of widgets 3-4.",
	} {
		r.Resolve(note)
	}
	require.Empty(t, r.Groups())
}

func TestResolveUnusableNoteKeepsLinks(t *testing.T) {
	sections := []catalog.ClassSection{
		{ID: "1", Term: "1179", Subject: "BIOL", Coursenum: "1010", Type: "LEC", Section: "01", Group: "1",
			Notes: "Lecture 01 take one of labs 201-202."},
		{ID: "2", Term: "1179", Subject: "BIOL", Coursenum: "1010", Type: "LAB", Section: "201", Group: "1",
			Notes: "Lecture 01 take the lab that fits your timetable."},
		{ID: "3", Term: "1179", Subject: "BIOL", Coursenum: "1010", Type: "LAB", Section: "202", Group: "1"},
	}

	out := Assign(sections)
	groups := make([]string, len(out))
	for i, s := range out {
		groups[i] = s.Group
	}
	require.Equal(t, []string{"1", "1", "1"}, groups)

	r := NewResolver()
	r.Resolve("Lecture 01 take one of labs 201-202.")
	before := r.Groups()
	r.Resolve("Lecture 01 take the lab that fits your timetable.")
	r.Resolve("Lab 201 take one of widgets 3-4.")
	if diff := cmp.Diff(before, r.Groups()); diff != "" {
		t.Fatal(diff)
	}
}

func TestResolvePluralSlotNoun(t *testing.T) {
	r := NewResolver()
	r.Resolve("Lecture 01 take labs 501,502 and tutorials 601-602")

	expected := map[string]int{
		"LEC 01":  1,
		"LAB 501": 1,
		"LAB 502": 1,
		"TUT 601": 2,
		"TUT 602": 2,
	}
	if diff := cmp.Diff(expected, r.Groups()); diff != "" {
		t.Fatal(diff)
	}
	group, _ := r.GroupOf("LEC 01")
	require.Equal(t, "1,2", group)
}

func TestClassRange(t *testing.T) {
	require.Equal(t, []string{"505", "506", "507"}, ClassRange("505-507"))
	require.Equal(t, []string{"001", "002", "003"}, ClassRange("001-003"))
	require.Equal(t, []string{"9", "10"}, ClassRange("9 - 10"))
	require.Empty(t, ClassRange("507-505"))
	require.Empty(t, ClassRange("A-C"))
	require.Empty(t, ClassRange("505"))
}

func TestAssign(t *testing.T) {
	section := func(id, typ, num, notes string) catalog.ClassSection {
		return catalog.ClassSection{
			ID: id, Term: "1179", Subject: "CS", Coursenum: "135",
			Type: typ, Section: num, Group: "1", Notes: notes,
		}
	}
	sections := []catalog.ClassSection{
		section("1", "LEC", "001", "Lecture 001 take one of tutorials 101-102 and one of labs 201-202."),
		section("2", "TUT", "101", ""),
		section("3", "TUT", "102", ""),
		section("4", "LAB", "201", ""),
		section("5", "LAB", "202", ""),
		section("6", "SEM", "301", ""),
	}
	other := section("7", "TUT", "101", "")
	other.Coursenum = "136"
	other.Group = "9"

	out := Assign(append(sections, other))
	groups := make([]string, len(out))
	for i, s := range out {
		groups[i] = s.Group
	}
	require.Equal(t, []string{"1,2", "1", "1", "2", "2", "1", "9"}, groups)
	// the input is left as is
	require.Equal(t, "1", sections[0].Group)
}
