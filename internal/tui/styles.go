// Package tui provides the Bubble Tea consultant chat interface for BrandSnap.
// styles.go defines lipgloss styles for the chat transcript, brand preview,
// and input line.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/insajin/brandsnap/internal/branding"
)

// Header and layout styles.
var (
	// headerStyle formats the title bar.
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(branding.ColorWhite)).
			Background(lipgloss.Color(branding.ColorDeepIndigo)).
			Padding(0, 1)

	// transcriptStyle frames the conversation panel.
	transcriptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(branding.ColorBorderGray)).
			Padding(0, 1)

	// inputStyle frames the message input line.
	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(branding.ColorPrimary)).
			Padding(0, 1)
)

// Speaker label styles.
var (
	// consultantLabel renders the consultant speaker tag.
	consultantLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorPrimary)).
			Bold(true)

	// userLabel renders the user speaker tag.
	userLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorMint)).
			Bold(true)

	// messageStyle formats message bodies.
	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorWhite))

	// pendingStyle renders the waiting indicator.
	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorAmber)).
			Italic(true)

	// errorStyle renders error lines.
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorCoral)).
			Bold(true)
)

// Brand preview styles.
var (
	// brandTitleStyle formats the generated brand name.
	brandTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(branding.ColorWhite)).
			Background(lipgloss.Color(branding.ColorViolet)).
			Padding(0, 1)

	// brandFieldStyle formats brand detail labels.
	brandFieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorLightGray)).
			Width(10)

	// brandValueStyle formats brand detail values.
	brandValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorWhite))
)

// Footer styles.
var (
	// helpStyle renders keyboard shortcut hints in the footer.
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorMutedGray))

	// helpKeyStyle renders keyboard shortcut keys.
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(branding.ColorMint)).
			Bold(true)
)

// Swatch returns a lipgloss-rendered color block for a palette hex value.
func Swatch(hex string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Render("    ")
}
