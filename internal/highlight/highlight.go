// Package highlight colors code snippets with chroma for terminal and HTML
// reports. Unknown languages fall back to the input unchanged.
package highlight

import (
	"bytes"
	"html"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const styleName = "monokai"

var htmlFormatter = chromahtml.New(
	chromahtml.WithClasses(false),
	chromahtml.PreventSurroundingPre(true),
)

func lexerFor(filename string) chroma.Lexer {
	lexer := lexers.Match(filename)
	if lexer == nil {
		if ext := filepath.Ext(filename); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
}

func style() *chroma.Style {
	s := styles.Get(styleName)
	if s == nil {
		return styles.Fallback
	}
	return s
}

func format(f chroma.Formatter, code, filename string) (string, bool) {
	lexer := lexerFor(filename)
	if lexer == nil {
		return "", false
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, style(), it); err != nil {
		return "", false
	}
	return buf.String(), true
}

// Terminal returns code colored with 256-color ANSI escapes, picking the
// lexer from filename. The input is returned as-is when no lexer matches.
func Terminal(code, filename string) string {
	f := formatters.Get("terminal256")
	if f == nil {
		return code
	}
	if out, ok := format(f, code, filename); ok {
		return out
	}
	return code
}

// HTML returns code as escaped HTML with inline color styles and no
// surrounding <pre>. Without a lexer the result is the escaped text.
func HTML(code, filename string) string {
	if out, ok := format(htmlFormatter, code, filename); ok {
		return out
	}
	return html.EscapeString(code)
}
