package mods

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls   int
	entries []Entry
	err     error
}

func (f *fakeFetcher) Fetch(url string) ([]Entry, error) {
	f.calls++
	return f.entries, f.err
}

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestResolverMemoizesFetch(t *testing.T) {
	f := &fakeFetcher{entries: entries("CF", "Expansion")}
	r := &Resolver{
		Individual: entries("Server Tools"),
		URL:        "https://steamcommunity.com/sharedfiles/filedetails/?id=1",
		Source:     f,
		Log:        quiet(),
	}

	first := r.Resolve()
	second := r.Resolve()
	require.Equal(t, 1, f.calls)
	require.Equal(t, first, second)
	require.Len(t, first.Individual, 1)
	require.Len(t, first.Collection, 2)
}

func TestResolverBlankURLSkipsFetch(t *testing.T) {
	for _, url := range []string{"", "   ", "\t\n"} {
		f := &fakeFetcher{entries: entries("CF")}
		r := &Resolver{URL: url, Source: f, Log: quiet()}

		set := r.Resolve()
		require.Zero(t, f.calls)
		require.Empty(t, set.Collection)
	}
}

func TestResolverFetchFailureIsNotFatal(t *testing.T) {
	f := &fakeFetcher{err: errors.New("404 not found")}
	r := &Resolver{
		Individual: entries("CF"),
		URL:        "https://steamcommunity.com/sharedfiles/filedetails/?id=1",
		Source:     f,
		Log:        quiet(),
	}

	set := r.Resolve()
	require.Empty(t, set.Collection)
	require.Len(t, set.Individual, 1)

	// The failed result is memoized too; no retry within the run.
	r.Resolve()
	require.Equal(t, 1, f.calls)
}
