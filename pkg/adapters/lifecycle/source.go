// Package lifecycle bridges document events into github.com/aretw0/lifecycle.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/EagleStelle/InStelle/pkg/core"
)

type documentSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource wraps a document event channel, as returned by Watch, in a lifecycle.Source.
// The source's channel closes when the wrapped channel closes or ctx ends.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &documentSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *documentSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *documentSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
