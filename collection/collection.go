// Package collection fetches Steam Workshop collection pages and extracts
// the mods they list.
package collection

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/charmbracelet/log"
	"golang.org/x/net/html"

	"dzsm/mods"
)

var (
	ErrNotCollection = errors.New("page is not a workshop collection")
	ErrNoEntries     = errors.New("no workshop items found in collection")
	ErrHTTPStatus    = errors.New("unexpected response status")
)

var (
	childrenSel  = cascadia.MustCompile(".collectionChildren")
	itemSel      = cascadia.MustCompile(".workshopItem")
	linkSel      = cascadia.MustCompile(`a[href*="/sharedfiles/filedetails/?id="]`)
	titleSel     = cascadia.MustCompile(".workshopItemTitle")
	pageTitleSel = cascadia.MustCompile("title")
)

const (
	// Steam rejects requests without a browser-ish user agent.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	fetchTimeout = 30 * time.Second
)

// Fetcher retrieves workshop collection pages over HTTP.
type Fetcher struct {
	Client *http.Client
	Log    *log.Logger
}

// Fetch downloads the collection page at rawurl and returns its mods in
// page order. The page must carry the collection structural markers;
// otherwise ErrNotCollection is returned. A well-formed collection page
// without a single extractable item yields ErrNoEntries, and a non-200
// response ErrHTTPStatus.
func (f *Fetcher) Fetch(rawurl string) ([]mods.Entry, error) {
	f.logger().Info("fetching collection", "url", rawurl)

	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			f.logger().Debug("close collection page body", "err", cerr)
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch collection page: %w (%s)", ErrHTTPStatus, resp.Status)
	}

	// Don’t read HTML pages larger than 1MiB.
	lr := io.LimitReader(resp.Body, 1024*1024)

	root, err := html.Parse(lr)
	if err != nil {
		return nil, err
	}
	entries, err := parse(root)
	if err != nil {
		return nil, err
	}
	if title, ok := pageTitle(root); ok {
		f.logger().Info("found collection", "title", title, "mods", len(entries))
	} else {
		f.logger().Info("found collection", "mods", len(entries))
	}
	return entries, nil
}

func (f *Fetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return &http.Client{Timeout: fetchTimeout}
}

func (f *Fetcher) logger() *log.Logger {
	if f.Log != nil {
		return f.Log
	}
	return log.Default()
}

func parse(root *html.Node) ([]mods.Entry, error) {
	if childrenSel.MatchFirst(root) == nil || itemSel.MatchFirst(root) == nil {
		return nil, ErrNotCollection
	}
	var entries []mods.Entry
	for _, n := range linkSel.MatchAll(root) {
		id, ok := itemID(attrVal(n, "href"))
		if !ok {
			continue
		}
		t := titleSel.MatchFirst(n)
		if t == nil {
			continue
		}
		name := strings.TrimSpace(nodeText(t))
		if name == "" {
			continue
		}
		entries = append(entries, mods.Entry{ID: id, Name: name})
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}

// itemID extracts the numeric workshop id from a filedetails URL such as
// https://steamcommunity.com/sharedfiles/filedetails/?id=1559212036.
func itemID(href string) (uint64, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(u.Query().Get("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// pageTitle reports the collection title, either from the first workshop
// item title or from the "Steam Workshop::Name" page title.
func pageTitle(root *html.Node) (string, bool) {
	if n := titleSel.MatchFirst(root); n != nil {
		if title := strings.TrimSpace(nodeText(n)); title != "" {
			return title, true
		}
	}
	if n := pageTitleSel.MatchFirst(root); n != nil {
		full := nodeText(n)
		if _, name, ok := strings.Cut(full, "::"); ok {
			return strings.TrimSpace(name), true
		}
	}
	return "", false
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Namespace != "" {
			continue
		}
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
