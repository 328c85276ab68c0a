package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vibewolf/vibewolf/internal/types"
	"golang.org/x/net/html"
)

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func TestHTML_SectionsInSeverityOrder(t *testing.T) {
	out, err := RenderString(sample(), FormatHTML, Options{Root: "/proj", GeneratedAt: fixedTime})
	require.NoError(t, err)
	doc := parse(t, out)

	var sections []string
	var files []string
	counts := map[string]string{}
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if n.Data == "section" && attr(n, "data-severity") != "" {
			sections = append(sections, attr(n, "data-severity"))
		}
		if n.Data == "div" && strings.Contains(attr(n, "class"), "count") && attr(n, "data-severity") != "" {
			counts[attr(n, "data-severity")] = n.FirstChild.FirstChild.Data
		}
		if n.Data == "li" && n.FirstChild != nil && n.FirstChild.Data == "code" {
			files = append(files, n.FirstChild.FirstChild.Data)
		}
	})
	assert.Equal(t, []string{"CRITICAL", "HIGH", "MEDIUM", "LOW"}, sections)
	assert.Equal(t, map[string]string{"CRITICAL": "1", "HIGH": "1", "MEDIUM": "1", "LOW": "1"}, counts)
	assert.Equal(t, []string{"src/a.js", "src/b.js"}, files)
}

func TestHTML_EscapesSnippets(t *testing.T) {
	fs := []types.Finding{{
		FilePath: "x.js", LineNumber: 1, RuleID: "xss_vulnerabilities", Severity: types.SevHigh,
		Description: "XSS <b>", CodeSnippet: `el.innerHTML = "<script>alert(1)</script>" + x`,
	}}
	for _, hl := range []bool{false, true} {
		out, err := RenderString(fs, FormatHTML, Options{Highlight: hl})
		require.NoError(t, err)
		doc := parse(t, out)
		var scripts int
		var text strings.Builder
		walk(doc, func(n *html.Node) {
			if n.Type == html.ElementNode && n.Data == "script" {
				scripts++
			}
			if n.Type == html.TextNode {
				text.WriteString(n.Data)
			}
		})
		assert.Zero(t, scripts, "snippet must not inject elements (highlight=%v)", hl)
		assert.Contains(t, text.String(), "<script>alert(1)</script>")
		assert.Contains(t, text.String(), "XSS <b>")
	}
}

func TestHTML_AllClear(t *testing.T) {
	out, err := RenderString(nil, FormatHTML, Options{})
	require.NoError(t, err)
	doc := parse(t, out)
	var clear, summary bool
	walk(doc, func(n *html.Node) {
		if n.Type == html.ElementNode && attr(n, "id") == "all-clear" {
			clear = true
		}
		if n.Type == html.ElementNode && attr(n, "id") == "summary" {
			summary = true
		}
	})
	assert.True(t, clear)
	assert.False(t, summary)
}
