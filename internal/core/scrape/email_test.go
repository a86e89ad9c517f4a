package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/bizwhiz/bizwhiz/internal/core"
)

const contactPage = `<html><body>
<a href="/about">About</a>
<a href="mailto:info@example.com">Email us</a>
<a href="mailto: sales@example.com ">Sales</a>
<a href="mailto:info@example.com">Again</a>
<a href="mailto:events@example.com?subject=Hello">Events</a>
<a href="mailto:">Empty</a>
<p>support@example.com is not a link</p>
</body></html>`

func TestFindEmails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "bizwhiz-test", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(contactPage))
	}))
	defer server.Close()

	var observed []int
	scraper := &EmailScraper{
		Client:    server.Client(),
		UserAgent: "bizwhiz-test",
		Observe: func(website string, found int, err error) {
			require.NoError(t, err)
			observed = append(observed, found)
		},
	}
	emails := scraper.FindEmails(context.Background(), server.URL)
	require.Equal(t, []string{"events@example.com", "info@example.com", "sales@example.com"}, emails)
	require.Equal(t, []int{3}, observed)
}

func TestFindEmailsSwallowsFailures(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	var failures []string
	scraper := &EmailScraper{OnError: func(website string, err error) {
		failures = append(failures, website)
	}}

	inputs := []string{
		core.WebsiteNotAvailable,
		"",
		"ftp://example.com",
		"http://%zz",
		notFound.URL,
		closedURL,
	}
	for _, website := range inputs {
		emails := scraper.FindEmails(context.Background(), website)
		require.NotNil(t, emails, website)
		require.Empty(t, emails, website)
	}
	require.Equal(t, inputs, failures)
}

func TestFindEmailsNilScraper(t *testing.T) {
	var scraper *EmailScraper
	require.Empty(t, scraper.FindEmails(context.Background(), "not a url"))
}

func TestExtractEmailsNoLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<p>nothing here</p>"))
	require.NoError(t, err)
	require.Empty(t, ExtractEmails(doc))
}
