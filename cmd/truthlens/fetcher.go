// cmd/truthlens/fetcher.go
package main

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// noiseSelector matches elements that never hold article text
const noiseSelector = "script, style, noscript, header, footer, iframe, aside, nav"

// Scraper retrieves a page and reduces it to readable text
type Scraper struct {
	client    *http.Client
	userAgent string
	sanitizer *bluemonday.Policy
}

// NewScraper creates a new scraper with the fetch timeout applied
func NewScraper(userAgent string) *Scraper {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Scraper{
		client: &http.Client{
			Timeout: FetchTimeout,
		},
		userAgent: userAgent,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// FetchReadableText returns "<title>. <body text>" for the page at url, or
// "" if anything goes wrong. Callers fall back to the raw input on "".
func (s *Scraper) FetchReadableText(ctx context.Context, url string) string {
	text, err := s.fetch(ctx, url)
	if err != nil {
		Logger().Warning("%v", NewFetchError(fmt.Sprintf("failed to scrape %s", url), err))
		return ""
	}
	return text
}

func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	body := io.LimitReader(resp.Body, MaxPageSize)

	if isFeedContentType(contentType) {
		return s.feedText(body)
	}

	reader, err := charset.NewReader(body, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to decode page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	return readableText(doc), nil
}

// readableText strips noise elements and prefers <article> over the
// concatenated <p> elements.
func readableText(doc *goquery.Document) string {
	doc.Find(noiseSelector).Remove()

	var text string
	if article := doc.Find("article").First(); article.Length() > 0 {
		text = joinedText(article)
	} else {
		var paragraphs []string
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			paragraphs = append(paragraphs, joinedText(p))
		})
		text = strings.Join(paragraphs, " ")
	}

	title := doc.Find("title").First().Text()
	return strings.TrimSpace(title + ". " + text)
}

// joinedText returns every text node under sel joined by single spaces,
// so adjacent block elements do not run together.
func joinedText(sel *goquery.Selection) string {
	var parts []string
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			parts = append(parts, n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

func isFeedContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "html") {
		return false
	}
	return strings.Contains(ct, "rss") || strings.Contains(ct, "atom") || strings.Contains(ct, "xml")
}

// feedText renders the newest feed item as "<feed>. <item>. <content>"
func (s *Scraper) feedText(body io.Reader) (string, error) {
	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return "", fmt.Errorf("failed to parse feed: %w", err)
	}
	if len(feed.Items) == 0 {
		return "", fmt.Errorf("feed %q has no items", feed.Title)
	}

	item := feed.Items[0]
	content := item.Content
	if content == "" {
		content = item.Description
	}
	content = html.UnescapeString(s.sanitizer.Sanitize(content))

	parts := []string{feed.Title, item.Title, strings.Join(strings.Fields(content), " ")}
	return strings.TrimSpace(strings.Join(parts, ". ")), nil
}
