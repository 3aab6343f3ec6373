package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/milestone-dev/milestone/pkg/project"
)

// Terminal colours follow the status badges drawn on SVG cards so a project
// reads the same in the shell and in a rendered card.
var (
	colorAccent   = lipgloss.Color("36")  // teal, headings and commands
	colorProgress = lipgloss.Color("220") // amber, in progress
	colorFavorite = lipgloss.Color("220")
	colorDone     = lipgloss.Color("35") // green, completed
	colorLive     = lipgloss.Color("75") // blue, launched and links
	colorText     = lipgloss.Color("255")
	colorLabel    = lipgloss.Color("245")
	colorMuted    = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleLink      = lipgloss.NewStyle().Foreground(colorLive).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)
	StyleValue     = lipgloss.NewStyle().Foreground(colorText)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorProgress)

	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleLabel   = lipgloss.NewStyle().Foreground(colorLabel).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorLive)
)

var statusStyles = map[project.Status]lipgloss.Style{
	project.StatusInProgress: lipgloss.NewStyle().Foreground(colorProgress),
	project.StatusCompleted:  lipgloss.NewStyle().Foreground(colorDone),
	project.StatusLaunched:   lipgloss.NewStyle().Foreground(colorLive),
}

// statusStyle colours a project status. Unknown statuses render dim.
func statusStyle(s project.Status) lipgloss.Style {
	if st, ok := statusStyles[s]; ok {
		return st
	}
	return StyleDim
}

// marks prefix one-line status messages.
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorDone).Render("✓")
	markWarning = lipgloss.NewStyle().Foreground(colorProgress).Render("!")
	markInfo    = lipgloss.NewStyle().Foreground(colorLabel).Render("›")
)

func printMarked(mark, format string, args ...any) {
	fmt.Println(mark + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printMarked(markSuccess, format, args...) }

func printWarning(format string, args ...any) {
	printMarked(markWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) { printMarked(markInfo, format, args...) }

// printDetail prints an indented, dimmed line under the previous message.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints one field of a project detail view.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// printFile reports a written artifact or export.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + StyleValue.Render(path))
}

// printRenderStats prints the SVG size and whether it came from the cache.
func printRenderStats(size int, cached bool) {
	origin := lipgloss.NewStyle().Foreground(colorLabel).Render("fresh")
	if cached {
		origin = lipgloss.NewStyle().Foreground(colorDone).Render("cached")
	}
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf("%d bytes · ", size)) + origin)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
