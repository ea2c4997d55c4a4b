package util

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// tags which the tokenizer reports as StartTagToken but which never close
var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// TruncateHTML copies whole top-level elements from the input until at least
// limit bytes have been written. It never cuts inside an element, so the
// result is balanced HTML. The second return value tells whether anything
// was left out.
func TruncateHTML(input io.Reader, limit int) (string, bool) {

	tokenizer := html.NewTokenizerFragment(input, "body")

	var buf = &bytes.Buffer{}
	var depth = 0

	for {

		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			// assuming tokenizer.Err() == io.EOF
			return buf.String(), false
		}

		switch tt {
		case html.StartTagToken:
			tagNameBytes, _ := tokenizer.TagName()
			if !voidElements[string(tagNameBytes)] {
				depth++
			}
		case html.EndTagToken:
			if depth > 0 {
				depth--
			}
		}

		buf.Write(tokenizer.Raw())

		if depth == 0 && buf.Len() >= limit {
			if tokenizer.Next() == html.ErrorToken {
				return buf.String(), false // nothing was left out
			}
			return buf.String(), true
		}
	}
}
