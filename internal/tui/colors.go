package tui

// Color constants for the lanes TUI theme
const (
	// Base Colors
	ColorAppBackground = ""        // Use terminal default background
	ColorBorder        = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (titles, user input)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, selected rows

	// Lane Colors
	ColorLaneSoon = "#38BDF8" // SOON lane header
	ColorLaneNow  = "#F59E0B" // NOW lane header
	ColorLaneHold = "#6D7383" // HOLD lane header

	// State Colors
	ColorError     = "#EF4444" // Errors
	ColorSuccess   = "#22C55E" // Completions, confirmations
	ColorImportant = "#F43F5E" // Important-task marker
	ColorBreak     = "#22C55E" // BREAK countdown
)
