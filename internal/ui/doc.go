// Package ui provides the user interface components for the pastel TUI.
//
// # Overview
//
// The ui package implements the visual components of pastel using the Bubble Tea
// framework and Lipgloss styling library. It follows the Model-Update-View pattern
// established by Bubble Tea.
//
// # Layout System
//
// The stories view is organized as follows:
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │                                   │
//	│   Feeds         │         Story List                │
//	│   (1/4 width)   │         (3/4 width)               │
//	│                 │                                   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// Opening a story switches to the story view, which fills the content
// area with the article and comment thread. Zen mode removes the header
// and footer for distraction-free reading; only there can the assistant
// panel open, splitting the story view with a right-hand pane.
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and the current feed or story.
// Uses a gradient background with the primary color.
//
// Footer: Shows context-aware keyboard shortcuts. The displayed shortcuts
// change based on the view, focus, and assistant state.
//
// FeedSidebar: Lists the Hacker News feeds with keyboard navigation
// (j/k or arrow keys).
//
// StoryList: Two-line story rows with infinite scroll near the end of
// the loaded page.
//
// StoryView: The story detail pane with the article, threaded comments,
// mouse text selection, and the floating selection action menu.
//
// AssistantPanel: The AI reading assistant conversation pane, backed by
// the pastel host process.
//
// Modal: Popup dialog container. The modal state types (search,
// settings, help, user profile, welcome) live in the modals subpackage.
//
// # Focus System
//
// In the stories view, Tab toggles between the feed sidebar and the
// story list. In the story view, Tab toggles between the story and the
// assistant panel when it is open. The 'q' key only quits outside the
// assistant prompt (to allow typing 'q' in a question).
//
// # Styles
//
// All styles are defined in styles.go using Lipgloss, with the palette
// supplied by the active theme in theme.go.
package ui
