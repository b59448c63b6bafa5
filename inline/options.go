// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/manifest"
	"github.com/vidq-cli/vidq/stream"
)

// Selector reduces a filtered query to at most one stream.
type Selector func(*stream.Query) (mo.Option[*stream.Stream], error)

// Options configures a single inline run.
type Options struct {
	Out      io.Writer
	Manifest *manifest.Manifest

	// Criteria narrows the manifest's streams before selection.
	Criteria stream.Filter
	// OrderBy optionally sorts by the named attribute before selection.
	OrderBy mo.Option[string]
	// Descending reverses the order after sorting.
	Descending bool

	// Selector picks a single stream; when absent, all remaining streams
	// are emitted.
	Selector mo.Option[Selector]

	Json bool
}

// ParseSelector translates a selector expression into a Selector.
//
// Recognized expressions:
//
//	first  - first stream of the result
//	last   - last stream of the result
//	best   - highest by the configured order attribute
//	worst  - lowest by the configured order attribute
//	itag=N - stream with the given format identifier
//	N      - stream at index N (starting from 0)
func ParseSelector(expr string) (Selector, error) {
	switch expr {
	case "first":
		return func(q *stream.Query) (mo.Option[*stream.Stream], error) {
			return q.First(), nil
		}, nil
	case "last":
		return func(q *stream.Query) (mo.Option[*stream.Stream], error) {
			return q.Last(), nil
		}, nil
	case "best":
		return func(q *stream.Query) (mo.Option[*stream.Stream], error) {
			ordered, err := q.OrderBy(viper.GetString(key.SelectOrderBy))
			if err != nil {
				return mo.None[*stream.Stream](), err
			}
			return ordered.Desc().First(), nil
		}, nil
	case "worst":
		return func(q *stream.Query) (mo.Option[*stream.Stream], error) {
			ordered, err := q.OrderBy(viper.GetString(key.SelectOrderBy))
			if err != nil {
				return mo.None[*stream.Stream](), err
			}
			return ordered.First(), nil
		}, nil
	}

	if itag, ok := cutPrefixInt(expr, "itag="); ok {
		return func(q *stream.Query) (mo.Option[*stream.Stream], error) {
			return q.GetByItag(itag), nil
		}, nil
	}

	if index, err := strconv.Atoi(expr); err == nil {
		return func(q *stream.Query) (mo.Option[*stream.Stream], error) {
			all := q.All()
			if index < 0 || index >= len(all) {
				return mo.None[*stream.Stream](), nil
			}
			return mo.Some(all[index]), nil
		}, nil
	}

	return nil, fmt.Errorf("invalid stream selector: %s", expr)
}

func cutPrefixInt(expr, prefix string) (int, bool) {
	if len(expr) <= len(prefix) || expr[:len(prefix)] != prefix {
		return 0, false
	}

	n, err := strconv.Atoi(expr[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}
