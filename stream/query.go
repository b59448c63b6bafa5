// Package stream defines the media stream descriptor model and the immutable
// query engine used to narrow, sort and select streams.
package stream

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

// Query is an immutable view over an ordered sequence of streams.
//
// Every transformation (Filter, OrderBy, Desc) returns a fresh Query; the
// receiver is never mutated and stays valid after any derived operation.
// Insertion order is significant: it determines iteration order, the
// First/Last semantics and the base order Desc reverses.
type Query struct {
	streams   []*Stream
	itagIndex map[int]*Stream
}

// NewQuery constructs a query over the given stream sequence.
//
// The itag index is built in sequence order, so when two streams share an
// itag the later one wins.
func NewQuery(streams []*Stream) *Query {
	q := &Query{
		streams:   slices.Clone(streams),
		itagIndex: make(map[int]*Stream, len(streams)),
	}
	for _, s := range q.streams {
		q.itagIndex[s.Itag] = s
	}
	return q
}

// Filter returns a new query narrowed to the streams satisfying every
// criterion. Relative order is preserved; no criteria means an equivalent
// query over the full sequence.
func (q *Query) Filter(criteria Filter) *Query {
	kept := q.streams
	for _, pred := range criteria.predicates() {
		kept = lo.Filter(kept, func(s *Stream, _ int) bool {
			return pred(s)
		})
	}
	return NewQuery(kept)
}

// OrderBy returns a new query sorted ascending by the named attribute.
// The sort is stable: streams comparing equal keep their relative order.
// An unrecognized attribute name yields an *UnknownAttributeError.
func (q *Query) OrderBy(attribute string) (*Query, error) {
	compare, ok := comparators[attribute]
	if !ok {
		return nil, newUnknownAttributeError(attribute)
	}

	ordered := slices.Clone(q.streams)
	slices.SortStableFunc(ordered, compare)
	return NewQuery(ordered), nil
}

// Desc returns a new query with the sequence reversed.
//
// This is a structural reversal of whatever the current order is, not a
// descending sort by key; chain it right after OrderBy to get descending
// order.
func (q *Query) Desc() *Query {
	reversed := slices.Clone(q.streams)
	slices.Reverse(reversed)
	return NewQuery(reversed)
}

// Asc returns the query unchanged. It exists as the explicit counterpart
// to Desc for readability.
func (q *Query) Asc() *Query {
	return q
}

// GetByItag looks up a stream by its format identifier in O(1).
func (q *Query) GetByItag(itag int) mo.Option[*Stream] {
	if s, ok := q.itagIndex[itag]; ok {
		return mo.Some(s)
	}
	return mo.None[*Stream]()
}

// First returns the first stream of the sequence, if any.
func (q *Query) First() mo.Option[*Stream] {
	if len(q.streams) == 0 {
		return mo.None[*Stream]()
	}
	return mo.Some(q.streams[0])
}

// Last returns the last stream of the sequence, if any.
func (q *Query) Last() mo.Option[*Stream] {
	if len(q.streams) == 0 {
		return mo.None[*Stream]()
	}
	return mo.Some(q.streams[len(q.streams)-1])
}

// Count returns the number of streams the query holds.
func (q *Query) Count() int {
	return len(q.streams)
}

// All returns the current sequence as a fresh slice. Mutating the returned
// slice does not affect the query.
func (q *Query) All() []*Stream {
	return slices.Clone(q.streams)
}
