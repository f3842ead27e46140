// Package ui holds the lipgloss styles used by godctl.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Styles defines all lipgloss styles used in the CLI.
var Styles = struct {
	Bold      lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Dim       lipgloss.Style
	ErrorText lipgloss.Style
}{
	Bold:      lipgloss.NewStyle().Bold(true),
	User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
	Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	ErrorText: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
}

// PrintError prints a styled error line to stdout.
func PrintError(format string, args ...interface{}) {
	fmt.Println(Styles.ErrorText.Render("✗ " + fmt.Sprintf(format, args...)))
}
