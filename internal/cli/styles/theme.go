// Package styles provides lipgloss styling for CLI output.
package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deskshell/deskshell/internal/domain/build"
)

// Theme holds the color palette for CLI output.
type Theme struct {
	Accent    lipgloss.Color
	Subtle    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultTheme returns the standard deskshell palette.
func DefaultTheme() *Theme {
	accent := lipgloss.Color("6")
	return &Theme{
		Accent:    accent,
		Subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	}
}

// RenderAbout renders build info as styled key/value lines.
func (t *Theme) RenderAbout(info build.Info) string {
	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render("deskshell")

	rows := []struct {
		key string
		val string
	}{
		{"version", info.Version},
		{"commit", info.Commit},
		{"built", info.BuildDate},
		{"go", info.GoVersion},
		{"repo", build.RepoURL()},
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n",
			t.Subtle.Render(row.key+":"),
			t.Highlight.Render(row.val)))
	}
	return b.String()
}
