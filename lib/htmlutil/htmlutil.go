package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// GetText concatenates every text node under node, markup is dropped and
// whitespace is kept as is.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	if node.Type == html.ElementNode && node.Data == "br" {
		buffer.WriteByte('\n')
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if c == ' ' {
			newStr.WriteRune(' ')
			continue
		}
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText turns every kind of whitespace (non-breaking spaces included)
// into plain spaces, drops non printable runes, then trims and collapses.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// Lines returns the non-empty cleaned lines of the text under sel.
func Lines(sel *goquery.Selection) []string {
	var lines []string
	for _, n := range sel.Nodes {
		for _, line := range strings.Split(GetText(n), "\n") {
			line = CleanText(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

type Option struct {
	Value string
	Text  string
}

// SelectOptions lists the options of the first select matched by sel.
func SelectOptions(sel *goquery.Selection) []Option {
	options := []Option{}
	sel.First().Find("option").Each(func(_ int, opt *goquery.Selection) {
		value, _ := opt.Attr("value")
		options = append(options, Option{
			Value: strings.TrimSpace(value),
			Text:  CleanText(opt.Text()),
		})
	})
	return options
}
