package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	require.Equal(t, "Jonathan Hudson", CleanText("  Jonathan  \t Hudson\n"))
	require.Equal(t, "Hudson Jonathan", CleanText("Hudson\u00a0Jonathan"))
	require.Equal(t, "", CleanText(" \n\t"))
}

func TestLinesAndOptions(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<table><tr><td>Associated Term: Fall 2017<br>Lethbridge Campus<br><br>  Lecture 001 take lab 201 </td></tr></table>
<select id="subj_id">
	<option value="CPSC">Computer Science</option>
	<option value="MATH"> Mathematics </option>
</select>`))
	require.NoError(t, err)

	require.Equal(t, []string{
		"Associated Term: Fall 2017",
		"Lethbridge Campus",
		"Lecture 001 take lab 201",
	}, Lines(doc.Find("td")))

	require.Equal(t, []Option{
		{Value: "CPSC", Text: "Computer Science"},
		{Value: "MATH", Text: "Mathematics"},
	}, SelectOptions(doc.Find("select#subj_id")))
}
