package main

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette (GitHub Primer)
var (
	colorAccent      = lipgloss.Color("#2F81F7") // accent blue - labels, headers
	colorAccentLight = lipgloss.Color("#79C0FF") // light blue - command names
	colorMuted       = lipgloss.Color("240")
)

// Styles
var (
	labelStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// testIsTTYOverride forces isTTY's answer in tests; nil means detect.
var (
	testIsTTYMutex    sync.Mutex
	testIsTTYOverride *bool
)

// isTTY returns true if stdout is a terminal
func isTTY() bool {
	if override := ttyOverride(); override != nil {
		return *override
	}
	return isTerminalFd(os.Stdout.Fd())
}

// isTerminalWriter reports whether w is a file attached to a terminal.
func isTerminalWriter(w io.Writer) bool {
	if override := ttyOverride(); override != nil {
		return *override
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && isTerminalFd(f.Fd())
}

func isTerminalFd(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func ttyOverride() *bool {
	testIsTTYMutex.Lock()
	defer testIsTTYMutex.Unlock()
	return testIsTTYOverride
}

// renderJSON renders an indented JSON document as a highlighted code block.
// Falls back to the plain document if glamour cannot render it.
func renderJSON(doc string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return doc
	}

	rendered, err := renderer.Render("```json\n" + doc + "\n```\n")
	if err != nil {
		return doc
	}
	return strings.Trim(rendered, "\n")
}
