package mods

import (
	"strings"

	"github.com/charmbracelet/log"
)

// Fetcher turns a workshop collection URL into the mods it lists.
type Fetcher interface {
	Fetch(url string) ([]Entry, error)
}

// Resolver merges the individually configured mods with the mods of an
// optional workshop collection. The collection is fetched at most once per
// Resolver; the result is memoized so repeated Resolve calls within a run
// never refetch. A failed fetch is downgraded to a warning and an empty
// collection list, because a broken collection link must not abort an
// otherwise valid install of the configured mods.
type Resolver struct {
	Individual []Entry
	URL        string
	Source     Fetcher
	Log        *log.Logger

	fetched    bool
	collection []Entry
}

func (r *Resolver) Resolve() Set {
	return Set{
		Individual: r.Individual,
		Collection: r.collectionMods(),
	}
}

func (r *Resolver) collectionMods() []Entry {
	if r.fetched {
		return r.collection
	}
	r.fetched = true

	url := strings.TrimSpace(r.URL)
	if url == "" {
		return nil
	}
	entries, err := r.Source.Fetch(url)
	if err != nil {
		r.logger().Warn("collection unavailable, continuing without collection mods",
			"url", url, "err", err)
		return nil
	}
	r.collection = entries
	return r.collection
}

func (r *Resolver) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.Default()
}
