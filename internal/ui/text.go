package ui

import (
	"strings"

	"github.com/fatih/color"
)

// Status glyphs used in spinner final messages.
func Success() string { return color.GreenString("✓") }
func Failure() string { return color.RedString("✗") }
func Arrow() string   { return color.CyanString("→") }

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// BulletList formats paths or names as an indented bullet list.
func BulletList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for _, item := range items {
		b.WriteString("  • ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}
