package calendar

import (
	"context"
	"time"

	"shutterbook/pkg/logger"
	"shutterbook/pkg/model"
)

// ConflictSource exposes the busy intervals one system of record knows about.
// Implementations are chosen once at construction time; callers never branch
// on which implementation they hold.
type ConflictSource interface {
	Name() string
	BusyIntervals(ctx context.Context, resourceID string, start, end time.Time) ([]model.BusyInterval, error)
}

// SourceWarning reports a source that could not contribute to a query.
// Availability computed without it is still served, just flagged.
type SourceWarning struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Composite merges the mandatory internal source with any number of optional
// external feeds. The internal source failing fails the query; an external
// source failing or timing out only degrades it.
type Composite struct {
	internal        ConflictSource
	externals       []ConflictSource
	externalTimeout time.Duration
	log             *logger.Logger
}

func NewComposite(internal ConflictSource, externalTimeout time.Duration, log *logger.Logger, externals ...ConflictSource) *Composite {
	return &Composite{
		internal:        internal,
		externals:       externals,
		externalTimeout: externalTimeout,
		log:             log,
	}
}

func (c *Composite) BusyIntervals(ctx context.Context, resourceID string, start, end time.Time) ([]model.BusyInterval, []SourceWarning, error) {
	busy, err := c.internal.BusyIntervals(ctx, resourceID, start, end)
	if err != nil {
		return nil, nil, err
	}

	var warnings []SourceWarning
	for _, external := range c.externals {
		intervals, err := c.queryExternal(ctx, external, resourceID, start, end)
		if err != nil {
			c.log.Warn("External conflict source degraded",
				"source", external.Name(),
				"resource_id", resourceID,
				"error", err,
			)
			warnings = append(warnings, SourceWarning{
				Source: external.Name(),
				Reason: err.Error(),
			})
			continue
		}
		busy = append(busy, intervals...)
	}

	return busy, warnings, nil
}

func (c *Composite) queryExternal(ctx context.Context, source ConflictSource, resourceID string, start, end time.Time) ([]model.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, c.externalTimeout)
	defer cancel()
	return source.BusyIntervals(ctx, resourceID, start, end)
}
