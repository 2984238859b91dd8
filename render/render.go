// Package render prints pages for a terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Redundancy/go-babel/engine"
	"github.com/Redundancy/go-babel/search"
	"github.com/charmbracelet/lipgloss"
)

const (
	gutterColor    = lipgloss.Color("6")
	highlightColor = lipgloss.Color("3")
)

type Options struct {
	// Chars is the line width; it must match the layout the page came from
	Chars int

	// Color enables ANSI styling, when the writer is a terminal that takes it
	Color bool

	// Highlight marks a search hit on the page
	Highlight *search.Highlight
}

// paint is a lipgloss Style's Render, or the identity when colour is off
type paint func(strs ...string) string

func plain(strs ...string) string {
	return strings.Join(strs, " ")
}

type styles struct {
	gutter    paint
	rule      paint
	header    paint
	highlight paint
}

func newStyles(w io.Writer, color bool) styles {
	if !color {
		return styles{gutter: plain, rule: plain, header: plain, highlight: plain}
	}

	r := lipgloss.NewRenderer(w)

	return styles{
		gutter:    r.NewStyle().Foreground(gutterColor).Render,
		rule:      r.NewStyle().Foreground(gutterColor).Render,
		header:    r.NewStyle().Bold(true).Render,
		highlight: r.NewStyle().Foreground(highlightColor).Bold(true).Underline(true).Render,
	}
}

// Header is the one line location of a page, with the room shortened
func Header(result *engine.PageResult) string {
	return fmt.Sprintf(
		"room %v  wall %v  shelf %v  book %v  page %v",
		result.RoomShort,
		result.Wall,
		result.Shelf,
		result.Book,
		result.Page,
	)
}

// Page writes the header, then each line numbered between rules:
//
//	================
//	01|line one    |
//	02|line two    |
//	================
func Page(w io.Writer, result *engine.PageResult, opts Options) error {
	s := newStyles(w, opts.Color)
	rule := s.rule(strings.Repeat("=", opts.Chars+4))
	bar := s.gutter("|")

	var out strings.Builder

	out.WriteString(s.header(Header(result)))
	out.WriteByte('\n')
	out.WriteString(rule)
	out.WriteByte('\n')

	for i, line := range result.Lines(opts.Chars) {
		out.WriteString(s.gutter(fmt.Sprintf("%02d", i+1)))
		out.WriteString(bar)
		out.WriteString(highlightLine(s, line, i, opts.Highlight))
		out.WriteString(bar)
		out.WriteByte('\n')
	}

	out.WriteString(rule)
	out.WriteByte('\n')

	_, err := io.WriteString(w, out.String())
	return err
}

// highlightLine styles the part of line number i covered by h
func highlightLine(s styles, line string, i int, h *search.Highlight) string {
	if h == nil || i < h.StartLine || i > h.EndLine {
		return line
	}

	from, to := 0, len(line)
	if i == h.StartLine {
		from = h.StartCol
	}
	if i == h.EndLine {
		to = h.EndCol
	}

	if from >= to || from >= len(line) {
		return line
	}
	if to > len(line) {
		to = len(line)
	}

	return line[:from] + s.highlight(line[from:to]) + line[to:]
}

// Plain writes the page content one line at a time, with no decoration
func Plain(w io.Writer, result *engine.PageResult, chars int) error {
	for _, line := range result.Lines(chars) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
