package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/pastelhq/pastel/internal/errors"
	"github.com/pastelhq/pastel/internal/logger"
)

const (
	// DefaultAPIBase is the official Firebase-backed item API.
	DefaultAPIBase = "https://hacker-news.firebaseio.com/v0"
	// DefaultSearchBase is the Algolia search API.
	DefaultSearchBase = "https://hn.algolia.com/api/v1"

	itemCacheTTL    = 5 * time.Minute
	feedCacheTTL    = 2 * time.Minute
	userCacheTTL    = 10 * time.Minute
	articleCacheTTL = 10 * time.Minute

	// maxConcurrentFetches bounds the fan-out when hydrating story
	// pages and comment threads.
	maxConcurrentFetches = 8

	// DefaultCommentDepth is how deep a thread is loaded up front.
	// Deeper replies are fetched on demand via CommentChildren.
	DefaultCommentDepth = 4

	// DefaultHitsPerPage is the Algolia page size.
	DefaultHitsPerPage = 30
)

// SearchSort selects the Algolia ranking.
type SearchSort int

const (
	SortRelevance SearchSort = iota
	SortDate
)

// SearchFilter restricts search results by item type.
type SearchFilter int

const (
	FilterAll SearchFilter = iota
	FilterStories
	FilterComments
)

// StoriesPage is one page of a feed with paging metadata.
type StoriesPage struct {
	Stories []*Item
	Total   int
	HasMore bool
}

// CacheStats reports how much the client is holding per cache, shown
// in the settings modal.
type CacheStats struct {
	Items int
	Feeds int
	Users int

	ItemTTL time.Duration
	FeedTTL time.Duration
	UserTTL time.Duration
}

// Client fetches items, feeds, users, and search results. All results
// are cached in-process with per-type TTLs, so it is cheap to call the
// same method repeatedly while paging around.
type Client struct {
	httpClient *http.Client
	apiBase    string
	searchBase string

	items    *gocache.Cache
	feeds    *gocache.Cache
	users    *gocache.Cache
	articles *gocache.Cache

	log *slog.Logger
}

// New returns a client against the production endpoints.
func New() *Client {
	return NewWithBases(DefaultAPIBase, DefaultSearchBase)
}

// NewWithBases returns a client against custom endpoints. Tests point
// this at an httptest server.
func NewWithBases(apiBase, searchBase string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiBase:    apiBase,
		searchBase: searchBase,
		items:      gocache.New(itemCacheTTL, 2*itemCacheTTL),
		feeds:      gocache.New(feedCacheTTL, 2*feedCacheTTL),
		users:      gocache.New(userCacheTTL, 2*userCacheTTL),
		articles:   gocache.New(articleCacheTTL, 2*articleCacheTTL),
		log:        logger.ComponentLogger("HN"),
	}
}

// Stories returns the full ordered ID list for a feed.
func (c *Client) Stories(ctx context.Context, feed Feed) ([]int, error) {
	if v, ok := c.feeds.Get(string(feed)); ok {
		return v.([]int), nil
	}

	var ids []int
	endpoint := fmt.Sprintf("%s/%s.json", c.apiBase, feed)
	if err := c.getJSON(ctx, endpoint, &ids); err != nil {
		return nil, errors.FeedFetchFailed(string(feed), err)
	}

	c.feeds.Set(string(feed), ids, gocache.DefaultExpiration)
	c.log.Debug("Fetched feed", "feed", string(feed), "count", len(ids))
	return ids, nil
}

// StoriesPage returns one hydrated page of a feed. Deleted and missing
// items are dropped, so a page may come back shorter than limit.
func (c *Client) StoriesPage(ctx context.Context, feed Feed, offset, limit int) (*StoriesPage, error) {
	ids, err := c.Stories(ctx, feed)
	if err != nil {
		return nil, err
	}

	total := len(ids)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	stories, err := c.Items(ctx, ids[offset:end])
	if err != nil {
		return nil, err
	}

	return &StoriesPage{
		Stories: stories,
		Total:   total,
		HasMore: offset+limit < total,
	}, nil
}

// Item fetches a single item by ID. The API returns a JSON null for
// unknown IDs, which surfaces as a KindNotFound error.
func (c *Client) Item(ctx context.Context, id int) (*Item, error) {
	key := strconv.Itoa(id)
	if v, ok := c.items.Get(key); ok {
		return v.(*Item), nil
	}

	var item *Item
	endpoint := fmt.Sprintf("%s/item/%d.json", c.apiBase, id)
	if err := c.getJSON(ctx, endpoint, &item); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.ItemNotFound(id)
	}

	c.items.Set(key, item, gocache.DefaultExpiration)
	return item, nil
}

// Items fetches many items concurrently, preserving input order.
// Missing items are skipped rather than failing the whole batch; any
// other error aborts the fetch.
func (c *Client) Items(ctx context.Context, ids []int) ([]*Item, error) {
	fetched := make([]*Item, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.Item(gctx, id)
			if err != nil {
				if errors.Is(err, errors.KindNotFound) {
					return nil
				}
				return err
			}
			fetched[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]*Item, 0, len(fetched))
	for _, it := range fetched {
		if it != nil {
			items = append(items, it)
		}
	}
	return items, nil
}

// Comments loads the thread under root, flattened in depth-first
// order. depth limits how many reply levels are fetched; replies
// beyond it stay visible through Kids on the returned comments.
func (c *Client) Comments(ctx context.Context, root *Item, depth int) ([]*Comment, error) {
	var out []*Comment
	if err := c.loadThread(ctx, root.Kids, 0, depth, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CommentChildren loads replies under a single comment, used when a
// thread was cut off by the depth limit.
func (c *Client) CommentChildren(ctx context.Context, id, depth int) ([]*Comment, error) {
	item, err := c.Item(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.Comments(ctx, item, depth)
}

// StoryWithComments fetches a story and its thread in one call.
func (c *Client) StoryWithComments(ctx context.Context, id, depth int) (*Item, []*Comment, error) {
	story, err := c.Item(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := c.Comments(ctx, story, depth)
	if err != nil {
		return nil, nil, err
	}
	return story, comments, nil
}

func (c *Client) loadThread(ctx context.Context, ids []int, level, depth int, out *[]*Comment) error {
	if depth <= 0 || len(ids) == 0 {
		return nil
	}

	items, err := c.Items(ctx, ids)
	if err != nil {
		return err
	}

	for _, it := range items {
		if it.Deleted || it.Dead {
			continue
		}
		*out = append(*out, &Comment{Item: *it, Depth: level})
		if err := c.loadThread(ctx, it.Kids, level+1, depth-1, out); err != nil {
			return err
		}
	}
	return nil
}

// User fetches a user profile by username.
func (c *Client) User(ctx context.Context, username string) (*User, error) {
	if v, ok := c.users.Get(username); ok {
		return v.(*User), nil
	}

	var user *User
	endpoint := fmt.Sprintf("%s/user/%s.json", c.apiBase, url.PathEscape(username))
	if err := c.getJSON(ctx, endpoint, &user); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.UserNotFound(username)
	}

	c.users.Set(username, user, gocache.DefaultExpiration)
	return user, nil
}

// Search queries the Algolia API.
func (c *Client) Search(ctx context.Context, query string, page int, sort SearchSort, filter SearchFilter) (*SearchResponse, error) {
	path := "search"
	if sort == SortDate {
		path = "search_by_date"
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("hitsPerPage", strconv.Itoa(DefaultHitsPerPage))
	switch filter {
	case FilterStories:
		params.Set("tags", "story")
	case FilterComments:
		params.Set("tags", "comment")
	}

	endpoint := fmt.Sprintf("%s/%s?%s", c.searchBase, path, params.Encode())
	var raw algoliaResponse
	if err := c.getJSON(ctx, endpoint, &raw); err != nil {
		return nil, errors.SearchFailed(query, err)
	}

	resp := &SearchResponse{
		Total:       raw.NbHits,
		Page:        raw.Page,
		Pages:       raw.NbPages,
		HitsPerPage: raw.HitsPerPage,
	}
	for _, h := range raw.Hits {
		resp.Results = append(resp.Results, h.toResult())
	}
	return resp, nil
}

// CacheStats returns current entry counts and the configured TTLs.
func (c *Client) CacheStats() CacheStats {
	return CacheStats{
		Items:   c.items.ItemCount(),
		Feeds:   c.feeds.ItemCount(),
		Users:   c.users.ItemCount(),
		ItemTTL: itemCacheTTL,
		FeedTTL: feedCacheTTL,
		UserTTL: userCacheTTL,
	}
}

// ClearCache drops all cached feeds, items, users, and articles.
func (c *Client) ClearCache() {
	c.items.Flush()
	c.feeds.Flush()
	c.users.Flush()
	c.articles.Flush()
	c.log.Info("All caches cleared")
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// algoliaHit is the wire shape of one Algolia search hit. Comments
// carry their parent story's title and URL in the story_* fields.
type algoliaHit struct {
	ObjectID    string   `json:"objectID"`
	Title       string   `json:"title"`
	StoryTitle  string   `json:"story_title"`
	Author      string   `json:"author"`
	Points      int      `json:"points"`
	NumComments int      `json:"num_comments"`
	CreatedAtI  int64    `json:"created_at_i"`
	URL         string   `json:"url"`
	StoryURL    string   `json:"story_url"`
	Tags        []string `json:"_tags"`
}

type algoliaResponse struct {
	Hits        []algoliaHit `json:"hits"`
	NbHits      int          `json:"nbHits"`
	Page        int          `json:"page"`
	NbPages     int          `json:"nbPages"`
	HitsPerPage int          `json:"hitsPerPage"`
}

func (h algoliaHit) toResult() SearchResult {
	id, _ := strconv.Atoi(h.ObjectID)

	title := h.Title
	if title == "" {
		title = h.StoryTitle
	}
	link := h.URL
	if link == "" {
		link = h.StoryURL
	}

	isComment := false
	for _, tag := range h.Tags {
		if tag == "comment" {
			isComment = true
			break
		}
	}

	return SearchResult{
		ID:          id,
		Title:       title,
		Author:      h.Author,
		Points:      h.Points,
		NumComments: h.NumComments,
		Time:        h.CreatedAtI,
		URL:         link,
		IsComment:   isComment,
	}
}
