package bonus

import (
	"context"
	"errors"

	"github.com/Jimmy4745/lovable-dispatch/internal/domain/bonus"
)

type fanOutPublisher []bonus.EventPublisher

// FanOut returns a publisher delivering each event to every non-nil
// publisher, or nil when none is given.
func FanOut(publishers ...bonus.EventPublisher) bonus.EventPublisher {
	var out fanOutPublisher
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}

func (f fanOutPublisher) PublishBonusEvent(ctx context.Context, event bonus.BonusEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishBonusEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
