package common

// Layout constants for the TUI

const (
	// HeaderHeight is the height of the header bar
	HeaderHeight = 1

	// FooterHeight is the height of the help/footer text
	FooterHeight = 1

	// PageSize is the number of feed items shown per page
	PageSize = 5

	// MaxContentTruncateWidth is the maximum width for truncating tweet content
	// This prevents very long lines on wide terminals
	MaxContentTruncateWidth = 150

	// TextInputDefaultWidth is a reasonable default width for text input fields
	TextInputDefaultWidth = 30

	// ComposeHeight is the height of the compose textarea
	ComposeHeight = 6
)

// CalculateAvailableHeight returns the height available for view content
// after accounting for header and footer
func CalculateAvailableHeight(totalHeight int) int {
	return totalHeight - HeaderHeight - FooterHeight - 2
}
