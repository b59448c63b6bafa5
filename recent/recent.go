// Package recent manages the persistence and retrieval of recently queried
// video locations and their suggestions.
package recent

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/where"
	"golang.org/x/exp/slices"
)

type record struct {
	Rank     int    `json:"rank"`
	Location string `json:"location"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	},
)

var suggestionCache = make(map[string][]*record)

// Remember records a queried manifest location in the persistent history or
// increments its popularity rank.
func Remember(location string, weight int) error {
	location = sanitize(location)
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[location]; ok {
		r.Rank += weight
	} else {
		cached[location] = &record{Rank: weight, Location: location}
	}

	return cacher.Set(cached)
}

// Suggest returns the most relevant historical location for a partial input.
func Suggest(input string) mo.Option[string] {
	suggestions := SuggestMany(input)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns the historical locations matching the partial input,
// sorted by popularity rank.
func SuggestMany(input string) []string {
	if !viper.GetBool(key.SearchShowSuggestions) {
		return []string{}
	}

	input = sanitize(input)
	var records []*record

	if prev, ok := suggestionCache[input]; ok {
		records = prev
	} else {
		cached, expired, err := cacher.Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, r := range cached {
			if fuzzy.Match(input, r.Location) {
				records = append(records, r)
			}
		}

		slices.SortFunc(records, func(a, b *record) int {
			return b.Rank - a.Rank // Descending rank
		})

		suggestionCache[input] = records
	}

	return lo.Map(records, func(r *record, _ int) string {
		return r.Location
	})
}

func sanitize(location string) string {
	return strings.TrimSpace(location)
}
