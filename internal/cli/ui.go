package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all human-facing command output. Tests swap it for a buffer.
var stdout io.Writer = os.Stdout

// ANSI 256 palette shared by command output, the canvas and the editor.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

func fg(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// Exported styles for text that other commands embed in their messages.
var (
	StyleTitle   = fg(colorCyan).Bold(true)
	StyleLink    = fg(colorBlue).Underline(true)
	StyleDim     = fg(colorDim)
	StyleValue   = fg(colorWhite)
	StyleNumber  = fg(colorCyan)
	StyleWarning = fg(colorYellow)
)

// marker is the leading glyph of a status line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markSuccess = marker{"✓", fg(colorGreen)}
	markWarning = marker{"!", fg(colorYellow)}
	markInfo    = marker{"›", fg(colorGray)}
	markFile    = marker{"→", StyleDim}
)

var (
	styleKey     = fg(colorGray).Width(12)
	styleCommand = fg(colorBlue)
	styleHit     = fg(colorGreen)
	styleMiss    = fg(colorGray)
)

func (m marker) line(text string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+text)
}

func printSuccess(format string, args ...any) { markSuccess.line(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarning.line(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) { markInfo.line(fmt.Sprintf(format, args...)) }

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprint(stdout, "  ")
	markFile.line(StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// statsLine summarises a sketch as "N lit edges · S/D divisions started · cached".
func statsLine(litEdges, started, divisions int, cached bool) string {
	sep := StyleDim.Render(" · ")
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d lit edges", litEdges)))
	b.WriteString(sep)
	b.WriteString(StyleDim.Render(fmt.Sprintf("%d/%d divisions started", started, divisions*divisions)))
	b.WriteString(sep)
	if cached {
		b.WriteString(styleHit.Render("cached"))
	} else {
		b.WriteString(styleMiss.Render("fresh"))
	}
	return b.String()
}

func printStats(litEdges, started, divisions int, cached bool) {
	fmt.Fprintln(stdout, statsLine(litEdges, started, divisions, cached))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
