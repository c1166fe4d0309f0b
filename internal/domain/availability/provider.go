package availability

import (
	"time"

	"staybook/internal/domain/shared/daterange"
)

// DefaultWindowDays is the lookahead offered by the date picker.
const DefaultWindowDays = 7

// Source classifies a single date. Implementations must be synchronous and free of side
// effects other than producing the value.
type Source interface {
	StatusOn(date time.Time) Status
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(date time.Time) Status

func (f SourceFunc) StatusOn(date time.Time) Status {
	return f(date)
}

// Provider generates the selectable date window.
type Provider struct {
	source   Source
	location *time.Location
}

// NewProvider creates a provider; dates are aligned to midnight in loc (UTC when nil).
func NewProvider(source Source, loc *time.Location) *Provider {
	if loc == nil {
		loc = time.UTC
	}
	return &Provider{source: source, location: loc}
}

func (p *Provider) Location() *time.Location {
	return p.location
}

// GenerateWindow returns days consecutive dates starting at start, in ascending order.
// A non-positive size yields an empty window.
func (p *Provider) GenerateWindow(start time.Time, days int) []DateInfo {
	if days <= 0 {
		return []DateInfo{}
	}
	first := daterange.Day(start, p.location)
	window := make([]DateInfo, 0, days)
	for i := 0; i < days; i++ {
		date := daterange.AddDays(first, i)
		window = append(window, DateInfo{Date: date, Status: p.statusOn(date)})
	}
	return window
}

func (p *Provider) statusOn(date time.Time) Status {
	if p.source == nil {
		return Unavailable
	}
	status := p.source.StatusOn(date)
	if !status.Valid() {
		return Unavailable
	}
	return status
}
