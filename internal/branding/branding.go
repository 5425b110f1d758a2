// Package branding centralizes all BrandSnap brand-related constants
// for the CLI and TUI, including application identity, interface colors,
// and ASCII art assets.
package branding

// Application identity constants.
const (
	AppName    = "BrandSnap"
	CLIName    = "BrandSnap Brand Studio"
	BinaryName = "brandsnap"
)

// Interface colors in hex format for Lipgloss true color support.
// These style the tool itself, not the generated brand palettes.
const (
	// ColorPrimary is the main interface color (Electric Indigo).
	ColorPrimary = "#667EEA"
	// ColorDeepIndigo is a darker indigo for titles and accents.
	ColorDeepIndigo = "#4C51BF"
	// ColorViolet is the secondary accent (Soft Violet).
	ColorViolet = "#764BA2"
	// ColorMint is the success color (Fresh Mint).
	ColorMint = "#2ECC71"
	// ColorAmber is the fallback-mode indicator color.
	ColorAmber = "#F39C12"
	// ColorCoral is the error color (Deep Coral).
	ColorCoral = "#E74C3C"
	// ColorWhite is pure white.
	ColorWhite = "#FFFFFF"
	// ColorLightGray is a light gray for labels.
	ColorLightGray = "#A1A1AA"
	// ColorMutedGray is a muted gray for help text.
	ColorMutedGray = "#71717A"
	// ColorBorderGray is a panel border gray for inactive elements.
	ColorBorderGray = "#52525B"
)

// Banner is a compact ASCII art lightning bolt for CLI startup display.
// The bolt echoes the "snap" in BrandSnap.
const Banner = `
      __
     / /
    / /_
   /  _/
  / /
 /_/ BrandSnap`

// Tagline is the one-line product description shown under the banner.
const Tagline = "AI-powered brand identities for startup ideas"
