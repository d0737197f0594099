package collection

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

const collectionPage = `<!doctype html>
<html><head><title>Steam Workshop::Scalespeeder Vanilla Plus</title></head>
<body>
<div class="collectionChildren">
  <div class="workshopItem">
    <a href="https://steamcommunity.com/sharedfiles/filedetails/?id=1559212036">
      <div class="workshopItemTitle">Community Framework</div>
    </a>
  </div>
  <div class="workshopItem">
    <a href="https://steamcommunity.com/sharedfiles/filedetails/?id=2116151222&searchtext=">
      <div class="workshopItemTitle">
        Dabs Framework
      </div>
    </a>
  </div>
  <div class="workshopItem">
    <a href="https://steamcommunity.com/sharedfiles/filedetails/?id=notanumber">
      <div class="workshopItemTitle">Broken Item</div>
    </a>
  </div>
</div>
</body></html>`

const profilePage = `<!doctype html>
<html><head><title>Steam Community :: SomeUser</title></head>
<body><div class="profile_header">nothing here</div></body></html>`

const emptyCollectionPage = `<!doctype html>
<html><body>
<div class="collectionChildren">
  <div class="workshopItem">
    <a href="https://steamcommunity.com/sharedfiles/filedetails/?id=1"></a>
  </div>
</div>
</body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher(srv *httptest.Server) *Fetcher {
	return &Fetcher{Client: srv.Client(), Log: log.New(io.Discard)}
}

func TestFetchCollection(t *testing.T) {
	srv := serve(t, http.StatusOK, collectionPage)

	entries, err := newFetcher(srv).Fetch(srv.URL)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, uint64(1559212036), entries[0].ID)
	require.Equal(t, "Community Framework", entries[0].Name)

	// The id survives extra query parameters and the title is trimmed.
	require.Equal(t, uint64(2116151222), entries[1].ID)
	require.Equal(t, "Dabs Framework", entries[1].Name)
}

func TestFetchNotACollection(t *testing.T) {
	srv := serve(t, http.StatusOK, profilePage)

	_, err := newFetcher(srv).Fetch(srv.URL)
	require.ErrorIs(t, err, ErrNotCollection)
}

func TestFetchNoEntries(t *testing.T) {
	srv := serve(t, http.StatusOK, emptyCollectionPage)

	_, err := newFetcher(srv).Fetch(srv.URL)
	require.ErrorIs(t, err, ErrNoEntries)
}

func TestFetchHTTPError(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "gone")

	_, err := newFetcher(srv).Fetch(srv.URL)
	require.ErrorIs(t, err, ErrHTTPStatus)
	require.NotErrorIs(t, err, ErrNotCollection)
	require.Contains(t, err.Error(), "404")
}

func TestItemID(t *testing.T) {
	testCases := []struct {
		href string
		want uint64
		ok   bool
	}{
		{"https://steamcommunity.com/sharedfiles/filedetails/?id=123", 123, true},
		{"https://steamcommunity.com/sharedfiles/filedetails/?id=123&searchtext=x", 123, true},
		{"https://steamcommunity.com/sharedfiles/filedetails/", 0, false},
		{"https://steamcommunity.com/sharedfiles/filedetails/?id=", 0, false},
	}
	for _, tc := range testCases {
		id, ok := itemID(tc.href)
		require.Equal(t, tc.ok, ok, tc.href)
		require.Equal(t, tc.want, id, tc.href)
	}
}
