package model

// Centralized icons for the UI components
// Using simple single-width characters for consistent terminal rendering
const (
	IconFirst     = "¹" // First entry in the catalog
	IconLast      = "¶" // Last entry in the catalog
	IconDirectory = "▸" // Existing directory
	IconFile      = "·" // Existing regular file
	IconSymlink   = "→" // Right arrow (symlink)
	IconMissing   = "✗" // Thin X (missing)
	IconUnknown   = "?" // Could not stat
	IconSelected  = "›" // Cursor marker
)
