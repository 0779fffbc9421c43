// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for the feed sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// AssistantWidthRatio is the denominator for the assistant panel width.
	// The panel takes 2/AssistantWidthRatio of the terminal, the story keeps the rest.
	AssistantWidthRatio = 5

	// TextareaHeight is the number of lines for the assistant input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// QuickBarHeight is the single row of quick actions between transcript and input
	QuickBarHeight = 1

	// TitleHeight is the height of panel titles
	TitleHeight = 1

	// SeparatorHeight is the height of separators between sections
	SeparatorHeight = 1

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth is the smallest width the layout math supports
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height the layout math supports
	MinTerminalHeight = 10
)

// Selection menu geometry
const (
	// MenuEdgeMargin is the minimum gap, in cells, between the selection menu
	// and any viewport edge, and the vertical gap between menu and selection
	MenuEdgeMargin = 8

	// MinSelectionChars is the minimum trimmed selection length that opens the menu
	MinSelectionChars = 3

	// CommentCaptureLimit caps the plaintext comment body captured for Draft Reply
	CommentCaptureLimit = 500
)

// Story rendering limits
const (
	// MaxCommentDepth is the deepest comment nesting fetched and rendered
	MaxCommentDepth = 6

	// CommentIndentWidth is the cells of indent per comment nesting level
	CommentIndentWidth = 2

	// StoryMetaHeight is the lines of score/author/time metadata under the title
	StoryMetaHeight = 1

	// StoryRowHeight is the lines one story occupies in the list (title + meta)
	StoryRowHeight = 2

	// LoadMoreThreshold is how close to the bottom the selection must be
	// before the next page of stories is fetched
	LoadMoreThreshold = 5
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalWidthWide is the width of content-heavy modals (settings, search)
	ModalWidthWide = 80

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50

	// HelpModalMaxVisible is the max shortcut rows shown before the help list scrolls
	HelpModalMaxVisible = 18

	// SearchModalMaxVisible is the max result rows shown in the search modal
	SearchModalMaxVisible = 10
)

// View identifies which top-level screen the app is showing.
type View int

const (
	// ViewStories is the feed sidebar plus the story list.
	ViewStories View = iota
	// ViewStory is the article and comment thread for a single story.
	ViewStory
)
