package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/imbecility/tubesave/pkg/models"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))            // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))             // red
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))            // blue
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))           // light grey
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")) // purple
)

var symbols = map[string]string{
	"pass":    "✓",
	"fail":    "✗",
	"pending": "◉",
	"arrow":   "→",
}

func printSuccess(text string) {
	fmt.Println(successStyle.Render(text))
}

func printPending(text string) {
	fmt.Println(pendingStyle.Render(symbols["pending"] + " " + text))
}

func printError(text string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(symbols["fail"]+" "+text))
}

func printSummary(w io.Writer, s *models.VideoSummary) {
	fmt.Fprintln(w, headerStyle.Render(s.Title))
	fmt.Fprintln(w, detailStyle.Render(fmt.Sprintf("%s author    %s", symbols["arrow"], s.Author)))
	fmt.Fprintln(w, detailStyle.Render(fmt.Sprintf("%s duration  %s", symbols["arrow"], formatDuration(s.Duration))))
	if s.Thumbnail != "" {
		fmt.Fprintln(w, detailStyle.Render(fmt.Sprintf("%s thumbnail %s", symbols["arrow"], s.Thumbnail)))
	}
}

func formatDuration(seconds int) string {
	h, m, s := seconds/3600, seconds%3600/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
