package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const mailtoSelector = `a[href^="mailto:"]`

// EmailScraper pulls contact addresses out of a business website. It is best
// effort: every failure produces an empty result.
type EmailScraper struct {
	Client    *http.Client
	UserAgent string

	// OnError receives failures that FindEmails swallows.
	OnError func(website string, err error)

	// Observe is called after every visit with the number of addresses
	// found and the swallowed error, if any.
	Observe func(website string, found int, err error)
}

// FindEmails fetches website and returns the distinct mailto targets on the
// page, sorted. Any fetch or parse failure yields an empty slice.
func (s *EmailScraper) FindEmails(ctx context.Context, website string) []string {
	emails, err := s.fetch(ctx, website)
	if s != nil && s.Observe != nil {
		s.Observe(website, len(emails), err)
	}
	if err != nil {
		if s != nil && s.OnError != nil {
			s.OnError(website, err)
		}
		return []string{}
	}
	return emails
}

func (s *EmailScraper) fetch(ctx context.Context, website string) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	target, err := url.Parse(strings.TrimSpace(website))
	if err != nil {
		return nil, fmt.Errorf("invalid website url: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("unsupported website url %q", website)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	if s != nil && s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	client := http.DefaultClient
	if s != nil && s.Client != nil {
		client = s.Client
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("status code error: %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, err
	}

	return ExtractEmails(doc), nil
}

// ExtractEmails collects the mailto targets of a parsed page.
func ExtractEmails(doc *goquery.Document) []string {
	seen := map[string]struct{}{}
	doc.Find(mailtoSelector).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		address := strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
		if i := strings.IndexByte(address, '?'); i >= 0 {
			address = strings.TrimSpace(address[:i])
		}
		if address == "" {
			return
		}
		seen[address] = struct{}{}
	})

	emails := make([]string, 0, len(seen))
	for address := range seen {
		emails = append(emails, address)
	}
	sort.Strings(emails)
	return emails
}
