package hn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pastelhq/pastel/internal/errors"
)

// articleBodyLimit caps how much of a linked page is read. Pages larger
// than this are truncated, not rejected.
const articleBodyLimit = 2 << 20

var articleTitlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Article is the readable text extracted from a story's linked page,
// shown in the reading pane for link posts.
type Article struct {
	Title     string
	Text      string
	WordCount int
}

// ArticleContent fetches a linked page and reduces it to readable plain
// text. Script, style, and markup are stripped the same way comment
// bodies are; the page title comes from the <title> tag when present.
func (c *Client) ArticleContent(ctx context.Context, articleURL string) (*Article, error) {
	if v, ok := c.articles.Get(articleURL); ok {
		return v.(*Article), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return nil, errors.ArticleFetchFailed(articleURL, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ArticleFetchFailed(articleURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.ArticleFetchFailed(articleURL, fmt.Errorf("unexpected status %s", resp.Status))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, articleBodyLimit))
	if err != nil {
		return nil, errors.ArticleFetchFailed(articleURL, err)
	}

	html := string(raw)
	text := PlainText(html)
	if text == "" {
		return nil, errors.ArticleFetchFailed(articleURL, fmt.Errorf("no readable text"))
	}

	var title string
	if m := articleTitlePattern.FindStringSubmatch(html); m != nil {
		title = strings.TrimSpace(PlainText(m[1]))
	}

	article := &Article{
		Title:     title,
		Text:      text,
		WordCount: len(strings.Fields(text)),
	}
	c.articles.Set(articleURL, article, gocache.DefaultExpiration)
	c.log.Debug("Fetched article", "url", articleURL, "words", article.WordCount)
	return article, nil
}
