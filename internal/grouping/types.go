package grouping

import "strings"

var typeCodes = map[string]string{
	"lecture":    "LEC",
	"lec":        "LEC",
	"lab":        "LAB",
	"laboratory": "LAB",
	"tutorial":   "TUT",
	"tut":        "TUT",
	"seminar":    "SEM",
	"sem":        "SEM",
	"discussion": "DIS",
	"dis":        "DIS",
	"studio":     "STU",
	"practicum":  "PRA",
	"clinic":     "CLN",
	"clinical":   "CLN",
	"workshop":   "WKS",
	"research":   "RES",
	"field":      "FLD",
}

// TypeCode maps an instruction type name, or an already abbreviated code, to
// its canonical code. Matching ignores case.
func TypeCode(name string) (string, bool) {
	code, ok := typeCodes[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

func singular(word string) string {
	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "ies"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return word[:len(word)-1]
	}
	return word
}
