// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"os"

	"github.com/vidq-cli/vidq/log"
	"github.com/vidq-cli/vidq/stream"
)

// Run executes one inline query: filter, order, select, emit.
func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	// Step 1: Narrow the manifest's streams with the composed criteria.
	q := options.Manifest.Query().Filter(options.Criteria)
	log.Debugf("%d of %d streams remain after filtering", q.Count(), len(options.Manifest.Streams))

	// Step 2: Apply the requested ordering.
	if attr, ok := options.OrderBy.Get(); ok {
		ordered, err := q.OrderBy(attr)
		if err != nil {
			return err
		}
		q = ordered
	}
	if options.Descending {
		q = q.Desc()
	}

	// Step 3: Reduce to a single stream when a selector is defined.
	var result []*stream.Stream
	if selector, ok := options.Selector.Get(); ok {
		picked, err := selector(q)
		if err != nil {
			return err
		}
		if s, ok := picked.Get(); ok {
			result = []*stream.Stream{s}
		}
	} else {
		result = q.All()
	}

	// Step 4: Dispatch the result to the configured output writer.
	if options.Json {
		return writeJson(options.Out, options.Manifest, result)
	}

	for _, s := range result {
		fmt.Fprintln(options.Out, s.URL)
	}

	return nil
}
