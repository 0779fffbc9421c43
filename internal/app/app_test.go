package app

import (
	"context"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/pastelhq/pastel/internal/assistant"
	"github.com/pastelhq/pastel/internal/bridge"
	"github.com/pastelhq/pastel/internal/config"
	"github.com/pastelhq/pastel/internal/hn"
	"github.com/pastelhq/pastel/internal/ui"
	"github.com/pastelhq/pastel/internal/ui/modals"
)

// ============================================================================
// Helpers
// ============================================================================

// newTestApp builds a model with an isolated config dir and a mock
// assistant bridge, sized like a normal terminal.
func newTestApp(t *testing.T) *Model {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	m := New(cfg, "test", WithAssistantClient(assistant.New(bridge.NewMockInvoker())))
	m.width = 120
	m.height = 40
	m.updateSizes()
	return m
}

func testItems(n int) []*hn.Item {
	items := make([]*hn.Item, n)
	for i := range items {
		items[i] = &hn.Item{
			ID:          1000 + i,
			Type:        "story",
			Title:       fmt.Sprintf("Story %d", i),
			By:          "pg",
			Score:       100 + i,
			Descendants: 10,
			URL:         "https://example.com/post",
		}
	}
	return items
}

func keyRune(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func keyEnter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func keyEsc() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyEscape} }
func keyTab() tea.KeyPressMsg   { return tea.KeyPressMsg{Code: tea.KeyTab} }

// loadStories seeds the active feed with n stories.
func loadStories(t *testing.T, m *Model, n int, hasMore bool) {
	t.Helper()
	m.Update(StoriesLoadedMsg{
		Feed:    m.sidebar.Active(),
		Stories: testItems(n),
		HasMore: hasMore,
	})
	if m.storyList.Len() != n {
		t.Fatalf("expected %d stories loaded, got %d", n, m.storyList.Len())
	}
}

// openStory navigates into the first story and completes its fetch.
func openStory(t *testing.T, m *Model) *hn.Item {
	t.Helper()
	loadStories(t, m, 3, false)
	m.Update(keyEnter())
	if m.view != ui.ViewStory {
		t.Fatalf("expected story view after enter, got %v", m.view)
	}
	story := testItems(1)[0]
	m.Update(StoryLoadedMsg{
		StoryID: m.pendingStoryID,
		Story:   story,
		Comments: []*hn.Comment{
			{Item: hn.Item{ID: 1, Type: "comment", By: "dang", Text: "First comment"}},
		},
	})
	return story
}

// ============================================================================
// Startup
// ============================================================================

func TestNew_UnknownDefaultFeedFallsBackToTop(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.SetDefaultFeed("frontpage")

	m := New(cfg, "test", WithAssistantClient(assistant.New(bridge.NewMockInvoker())))
	if m.sidebar.Active() != hn.FeedTop {
		t.Errorf("active feed = %v, want FeedTop", m.sidebar.Active())
	}
}

func TestNew_StartsFocusedOnStoryList(t *testing.T) {
	m := newTestApp(t)
	if m.focus != FocusStories {
		t.Errorf("focus = %v, want FocusStories", m.focus)
	}
	if m.view != ui.ViewStories {
		t.Errorf("view = %v, want ViewStories", m.view)
	}
}

// ============================================================================
// Feed loading
// ============================================================================

func TestStoriesLoaded_InstallsActiveFeedPage(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 5, true)

	if !m.storyList.HasMore() {
		t.Error("expected HasMore carried through")
	}
}

func TestStoriesLoaded_StaleFeedDiscarded(t *testing.T) {
	m := newTestApp(t)

	m.Update(StoriesLoadedMsg{Feed: hn.FeedNew, Stories: testItems(5), HasMore: true})
	if m.storyList.Len() != 0 {
		t.Errorf("stale feed page should be discarded, got %d stories", m.storyList.Len())
	}
}

func TestMoreStoriesLoaded_Appends(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 5, true)
	m.storyList.SetLoadingMore(true)

	m.Update(MoreStoriesLoadedMsg{Feed: m.sidebar.Active(), Stories: testItems(5), HasMore: false})

	if m.storyList.Len() != 10 {
		t.Errorf("expected 10 stories after append, got %d", m.storyList.Len())
	}
	if m.storyList.IsLoadingMore() {
		t.Error("loading-more flag should clear when the page lands")
	}
	if m.storyList.HasMore() {
		t.Error("HasMore should clear on the final page")
	}
}

func TestNavigationNearEnd_TriggersLoadMore(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 10, true)

	_, cmd := m.Update(keyRune('G'))

	if cmd == nil {
		t.Fatal("expected a load-more command at the end of the list")
	}
	if !m.storyList.IsLoadingMore() {
		t.Error("expected loading-more flag while the fetch runs")
	}
}

// ============================================================================
// Story navigation
// ============================================================================

func TestEnter_OpensSelectedStory(t *testing.T) {
	m := newTestApp(t)
	story := openStory(t, m)

	if m.storyView.Story() == nil || m.storyView.Story().ID != story.ID {
		t.Fatal("story view should hold the opened story")
	}
	if m.panel.BoundItem() == nil || m.panel.BoundItem().ID != story.ID {
		t.Error("assistant context should bind to the opened story")
	}
	if m.focus != FocusStory {
		t.Errorf("focus = %v, want FocusStory", m.focus)
	}
}

func TestStoryLoaded_StaleFetchDiscarded(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)

	other := &hn.Item{ID: 9999, Type: "story", Title: "Stale"}
	m.Update(StoryLoadedMsg{StoryID: 9999, Story: other})

	if m.storyView.Story().ID == 9999 {
		t.Error("a fetch for a story no longer pending must be discarded")
	}
}

func TestEscape_ReturnsToStoryList(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)

	m.Update(keyEsc())

	if m.view != ui.ViewStories {
		t.Errorf("view = %v, want ViewStories", m.view)
	}
	if m.focus != FocusStories {
		t.Errorf("focus = %v, want FocusStories", m.focus)
	}
	if m.panel.BoundItem() != nil {
		t.Error("assistant context should unbind when leaving the story")
	}
}

// ============================================================================
// Zen mode and assistant visibility
// ============================================================================

func TestZen_AssistantOnlyEligibleInZenStoryView(t *testing.T) {
	m := newTestApp(t)

	if m.panel.Eligible() {
		t.Error("assistant must not be eligible in the stories view")
	}

	openStory(t, m)
	if m.panel.Eligible() {
		t.Error("assistant must not be eligible outside zen mode")
	}

	m.Update(keyRune('z'))
	if !m.panel.Eligible() {
		t.Error("assistant should be eligible in zen story view")
	}
}

func TestZenExit_ForceClosesOpenAssistant(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)
	m.Update(keyRune('z'))
	m.Update(keyRune('a'))
	if !m.panel.IsOpen() {
		t.Fatal("expected panel open after toggle")
	}
	if m.focus != FocusAssistant {
		t.Fatalf("focus = %v, want FocusAssistant", m.focus)
	}

	// Move focus off the prompt, then leave zen
	m.Update(keyTab())
	m.Update(keyRune('z'))

	if m.panel.IsOpen() {
		t.Error("leaving zen must force-close the panel")
	}
	if m.focus != FocusStory {
		t.Errorf("focus = %v, want FocusStory after force close", m.focus)
	}
}

func TestAssistantResponse_AfterForceCloseNotifies(t *testing.T) {
	m := newTestApp(t)
	m.config.SetNotificationsEnabled(true)
	openStory(t, m)
	m.Update(keyRune('z'))
	m.Update(keyRune('a'))
	m.Update(keyTab())
	m.Update(keyRune('z')) // force close with the panel open

	content := "The answer"
	_, cmd := m.Update(ui.AssistantResponseMsg{Content: &content})

	if cmd == nil {
		t.Fatal("expected a notification command for a reply the user never saw")
	}
	reply, ok := m.panel.LastAssistantReply()
	if !ok || reply != content {
		t.Errorf("reply should land in the transcript, got %q", reply)
	}
}

func TestAssistantResponse_WhileOpenDoesNotNotify(t *testing.T) {
	m := newTestApp(t)
	m.config.SetNotificationsEnabled(true)
	openStory(t, m)
	m.Update(keyRune('z'))
	m.Update(keyRune('a'))

	content := "The answer"
	_, cmd := m.Update(ui.AssistantResponseMsg{Content: &content})

	if cmd != nil {
		t.Error("a reply landing in an open panel must not notify")
	}
}

// ============================================================================
// Selection actions
// ============================================================================

func TestSelectionAction_ExplainStartsRequest(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)

	_, cmd := m.Update(ui.SelectionActionMsg{
		Action: ui.ActionExplain,
		Text:   "a dense paragraph",
		Region: ui.RegionArticle,
	})

	if cmd == nil {
		t.Fatal("expected an explain request command")
	}
	if !m.panel.IsLoading() {
		t.Error("panel should enter its loading state")
	}
}

func TestSelectionAction_DraftReplyNeedsCapture(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)

	_, cmd := m.Update(ui.SelectionActionMsg{
		Action: ui.ActionDraftReply,
		Text:   "quoted text",
		Region: ui.RegionComment,
	})
	if cmd != nil {
		t.Error("draft reply without a captured comment must be ignored")
	}

	_, cmd = m.Update(ui.SelectionActionMsg{
		Action:  ui.ActionDraftReply,
		Text:    "quoted text",
		Region:  ui.RegionComment,
		Capture: &ui.CommentCapture{ID: 1, Author: "dang", Body: "First comment"},
	})
	if cmd == nil {
		t.Error("expected a draft-reply request command")
	}
}

// ============================================================================
// Modals
// ============================================================================

func TestSearchModal_FullFlow(t *testing.T) {
	m := newTestApp(t)

	m.Update(keyRune('/'))
	search, ok := m.modal.State.(*modals.SearchState)
	if !ok {
		t.Fatal("expected the search modal to open")
	}

	m.Update(keyRune('g'))
	m.Update(keyRune('o'))
	_, cmd := m.Update(keyEnter())
	if cmd == nil {
		t.Fatal("expected a search command on enter")
	}
	if search.LastQuery != "go" || !search.Searching {
		t.Fatalf("search not started: last=%q searching=%v", search.LastQuery, search.Searching)
	}

	m.Update(SearchResultsMsg{
		Query: "go",
		Results: []hn.SearchResult{
			{ID: 42, Title: "Go 2.0", Author: "rsc", Points: 500, NumComments: 321, Time: 1700000000},
		},
		Total: 1,
	})
	if len(search.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(search.Results))
	}

	m.Update(keyEnter())
	if m.modal.IsVisible() {
		t.Error("opening a result should close the modal")
	}
	if m.view != ui.ViewStory || m.pendingStoryID != 42 {
		t.Errorf("expected story 42 opening, view=%v pending=%d", m.view, m.pendingStoryID)
	}
}

func TestSearchResults_ForAnotherQueryDiscarded(t *testing.T) {
	m := newTestApp(t)
	m.Update(keyRune('/'))
	search := m.modal.State.(*modals.SearchState)
	m.Update(keyRune('g'))
	m.Update(keyRune('o'))
	m.Update(keyEnter())

	m.Update(SearchResultsMsg{Query: "rust", Results: []hn.SearchResult{{ID: 7}}, Total: 1})

	if len(search.Results) != 0 {
		t.Error("results for a superseded query must be discarded")
	}
}

func TestUserModal_LoadsProfile(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 3, false)

	_, cmd := m.Update(keyRune('u'))
	if cmd == nil {
		t.Fatal("expected a profile fetch command")
	}
	profile, ok := m.modal.State.(*modals.UserState)
	if !ok {
		t.Fatal("expected the profile modal to open")
	}
	if profile.Username != "pg" {
		t.Errorf("username = %q, want pg", profile.Username)
	}

	m.Update(UserLoadedMsg{
		Username: "pg",
		User:     &hn.User{ID: "pg", Karma: 150000, Created: 1160418092, About: "Founder"},
	})
	if profile.Loading {
		t.Error("profile should leave its loading state")
	}
	if profile.Karma != 150000 {
		t.Errorf("karma = %d, want 150000", profile.Karma)
	}
}

func TestUserModal_LoadErrorShown(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 3, false)
	m.Update(keyRune('u'))
	profile := m.modal.State.(*modals.UserState)

	m.Update(UserLoadedMsg{Username: "pg", Err: fmt.Errorf("boom")})

	if profile.LoadError == "" {
		t.Error("expected the fetch error surfaced in the modal")
	}
}

func TestWelcomeModal_DismissMarksSeen(t *testing.T) {
	m := newTestApp(t)
	m.modal.Show(modals.NewWelcomeState())

	m.Update(keyEnter())

	if m.modal.IsVisible() {
		t.Error("welcome modal should close on enter")
	}
	if !m.config.HasSeenWelcome() {
		t.Error("dismissing the welcome modal should persist the flag")
	}
}

func TestSettingsModal_ApplyPersists(t *testing.T) {
	m := newTestApp(t)

	m.Update(keyRune('s'))
	if _, ok := m.modal.State.(*modals.SettingsState); !ok {
		t.Fatal("expected the settings modal to open")
	}

	m.Update(keyEnter())
	if m.modal.IsVisible() {
		t.Error("settings modal should close after applying")
	}
}

func TestHelpModal_TriggeredShortcutRuns(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)
	m.Update(keyRune('?'))
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Fatal("expected the help modal to open")
	}

	m.Update(modals.HelpShortcutTriggeredMsg{Key: "z"})

	if m.modal.IsVisible() {
		t.Error("triggering a shortcut should close the help modal")
	}
	if !m.zenMode {
		t.Error("the triggered shortcut should execute")
	}
}

// ============================================================================
// Shortcut guards
// ============================================================================

func TestShortcut_AssistantGatedOutsideZen(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)

	if _, _, handled := m.ExecuteShortcut("a"); handled {
		t.Error("assistant toggle must not fire outside zen mode")
	}
	if m.panel.IsOpen() {
		t.Error("panel must stay closed")
	}
}

func TestShortcut_UnknownKeyPropagates(t *testing.T) {
	m := newTestApp(t)
	if _, _, handled := m.ExecuteShortcut("x"); handled {
		t.Error("unbound keys must propagate to the focused component")
	}
}

func TestFocusToggle_CyclesWithinView(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 3, false)

	m.Update(keyTab())
	if m.focus != FocusSidebar {
		t.Errorf("focus = %v, want FocusSidebar", m.focus)
	}
	m.Update(keyTab())
	if m.focus != FocusStories {
		t.Errorf("focus = %v, want FocusStories", m.focus)
	}
}

func TestSidebarEnter_SwitchesFeed(t *testing.T) {
	m := newTestApp(t)
	loadStories(t, m, 3, false)

	m.Update(keyTab()) // focus sidebar
	m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(keyEnter())

	if cmd == nil {
		t.Fatal("expected a feed fetch command")
	}
	if m.sidebar.Active() == hn.FeedTop {
		t.Error("active feed should change")
	}
	if m.focus != FocusStories {
		t.Errorf("focus = %v, want FocusStories after activating a feed", m.focus)
	}
}

// ============================================================================
// Quit
// ============================================================================

func TestQuit_ShutsDownAssistant(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	mock := bridge.NewMockInvoker()
	mock.QueueResult(bridge.CmdInit, bridge.Status{Available: true, Running: true})
	mock.QueueResult(bridge.CmdShutdown, nil)
	client := assistant.New(mock)
	if status := client.Init(context.Background()); !status.Available {
		t.Fatalf("Init() = %+v, want available", status)
	}

	m := New(cfg, "test", WithAssistantClient(client))
	m.width = 120
	m.height = 40
	m.updateSizes()

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit command should resolve to tea.QuitMsg")
	}
	if n := mock.CallCount(bridge.CmdShutdown); n != 1 {
		t.Errorf("shutdown calls = %d, want 1", n)
	}
}

func TestQuit_UninitializedAssistantSkipsShutdown(t *testing.T) {
	m := newTestApp(t)

	_, cmd, handled := m.ExecuteShortcut("q")
	if !handled {
		t.Fatal("q should be handled by the shortcut registry")
	}
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit command should resolve to tea.QuitMsg")
	}
}

// ============================================================================
// Article fetch
// ============================================================================

func TestArticleShortcut_StartsFetch(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)

	_, cmd, handled := m.ExecuteShortcut("r")
	if !handled {
		t.Fatal("r should be handled in story view for a link post")
	}
	if cmd == nil {
		t.Fatal("expected an article fetch command")
	}
	if !m.storyView.IsArticleLoading() {
		t.Error("story view should mark the fetch in flight")
	}

	// A repeat press while the fetch runs propagates instead of refetching.
	if _, _, handled := m.ExecuteShortcut("r"); handled {
		t.Error("r should not refetch while a fetch is in flight")
	}
}

func TestArticleShortcut_RequiresLink(t *testing.T) {
	m := newTestApp(t)

	if _, _, handled := m.ExecuteShortcut("r"); handled {
		t.Error("r should propagate outside the story view")
	}
}

func TestArticleLoaded_BindsToStoryView(t *testing.T) {
	m := newTestApp(t)
	story := openStory(t, m)
	m.ExecuteShortcut("r")

	m.Update(ArticleLoadedMsg{
		StoryID: story.ID,
		Article: &hn.Article{Text: "Terminals persist because text is fast.", WordCount: 6},
	})

	if m.storyView.Article() == nil {
		t.Fatal("article should be bound to the story view")
	}
	if m.storyView.IsArticleLoading() {
		t.Error("loading state should clear once the article lands")
	}

	// Once loaded, r has nothing left to fetch.
	if _, _, handled := m.ExecuteShortcut("r"); handled {
		t.Error("r should propagate once the article is loaded")
	}
}

func TestArticleLoaded_StaleStoryDiscarded(t *testing.T) {
	m := newTestApp(t)
	openStory(t, m)
	m.ExecuteShortcut("r")

	m.Update(ArticleLoadedMsg{
		StoryID: 9999,
		Article: &hn.Article{Text: "wrong story", WordCount: 2},
	})

	if m.storyView.Article() != nil {
		t.Error("an article for another story must be discarded")
	}
}

func TestArticleLoaded_ErrorClearsIndicator(t *testing.T) {
	m := newTestApp(t)
	story := openStory(t, m)
	m.ExecuteShortcut("r")

	m.Update(ArticleLoadedMsg{StoryID: story.ID, Err: fmt.Errorf("boom")})

	if m.storyView.IsArticleLoading() {
		t.Error("a failed fetch should clear the loading state")
	}
	if m.storyView.Article() != nil {
		t.Error("a failed fetch should not bind an article")
	}
}
