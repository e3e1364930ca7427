// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/Natatashkin/todo/internal/service"
)

const (
	checkOpen      = "[ ]"
	checkCompleted = "[x]"
)

// Item is a task together with the number the CLI shows for it.
type Item struct {
	Num          int `json:"num" yaml:"num"`
	service.Task `yaml:",inline"`
}

// FormatTask formats a task line.
// Format: "{N:>4}  [ ] {TITLE}\n", with "[x]" for completed tasks.
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(task.Completed), normalizeTitle(task.Title))
}

// FormatSummary formats the open/completed counts.
func FormatSummary(w io.Writer, open, completed int) {
	fmt.Fprintf(w, "%d open, %d completed\n", open, completed)
}

// Title returns the title as displayed.
func Title(title string) string {
	return normalizeTitle(title)
}

func checkbox(completed bool) string {
	if completed {
		return checkCompleted
	}
	return checkOpen
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
