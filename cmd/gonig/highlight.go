package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// palette renders the parts of a match line. The zero value prints plain
// text.
type palette struct {
	file   lipgloss.Style
	offset lipgloss.Style
	match  lipgloss.Style
	group  lipgloss.Style
	color  bool
}

func newPalette(w io.Writer, color bool) palette {
	if !color {
		return palette{}
	}
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return palette{
		file:   r.NewStyle().Foreground(lipgloss.Color("5")),
		offset: r.NewStyle().Foreground(lipgloss.Color("2")),
		match:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		group:  r.NewStyle().Foreground(lipgloss.Color("86")),
		color:  true,
	}
}

func (p palette) render(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p palette) File(s string) string   { return p.render(p.file, s) }
func (p palette) Offset(s string) string { return p.render(p.offset, s) }
func (p palette) Match(s string) string  { return p.render(p.match, s) }
func (p palette) Group(s string) string  { return p.render(p.group, s) }
