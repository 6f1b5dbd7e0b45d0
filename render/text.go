package render

import (
	"fmt"
	"io"
	"strings"
)

// TextSidebar prints the sidebar to a terminal. Messages and entries are written
// as they arrive; Clear prints nothing.
type TextSidebar struct {
	w io.Writer
}

func NewTextSidebar(w io.Writer) *TextSidebar {
	return &TextSidebar{w: w}
}

func (t *TextSidebar) Clear() {}

func (t *TextSidebar) ShowMessage(msg string) {
	fmt.Fprintln(t.w, msg)
}

func (t *TextSidebar) Append(e *Entry) {
	fmt.Fprintf(t.w, "%d. [%s] %s\n", e.Index+1, e.CategoryLabel, e.Title)
	fmt.Fprintf(t.w, "   %s | %s | %s\n", e.PublicationDate, e.ImpactLabel, e.EffectLabel)
	if e.Target != nil {
		fmt.Fprintf(t.w, "   at %.4f, %.4f\n", e.Target.Lat, e.Target.Lng)
	}
	fmt.Fprintln(t.w, strings.Repeat("-", 30))
}
