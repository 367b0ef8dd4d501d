package extract

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WritePOT writes messages as a gettext POT fragment. Duplicate texts are
// merged into a single entry, keeping every source reference and comment.
func WritePOT(w io.Writer, filename string, msgs []Message) error {
	type entry struct {
		text     string
		comments []string
		refs     []string
	}

	var order []string
	index := make(map[string]*entry)
	for _, m := range msgs {
		e, ok := index[m.Text]
		if !ok {
			e = &entry{text: m.Text}
			index[m.Text] = e
			order = append(order, m.Text)
		}
		for _, c := range m.Comments {
			if !containsString(e.comments, c) {
				e.comments = append(e.comments, c)
			}
		}
		ref := fmt.Sprintf("%s:%d", filename, m.Line)
		if !containsString(e.refs, ref) {
			e.refs = append(e.refs, ref)
		}
	}

	bw := bufio.NewWriter(w)
	for _, text := range order {
		e := index[text]
		for _, c := range e.comments {
			fmt.Fprintf(bw, "#. %s\n", c)
		}
		fmt.Fprintf(bw, "#: %s\n", strings.Join(e.refs, " "))
		fmt.Fprintf(bw, "msgid %s\n", potQuote(e.text))
		fmt.Fprint(bw, "msgstr \"\"\n\n")
	}
	return bw.Flush()
}

func potQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
