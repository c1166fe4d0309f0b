package inventory

import (
	"context"
	"time"

	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
)

// Observer receives generated windows and quote outcomes for metrics.
type Observer interface {
	ObserveWindow(window []availability.DateInfo)
	ObserveQuote(outcome string)
}

// Generator produces the window offered for a listing.
type Generator struct {
	Listings listings.Repository
	Sources  Resolver
	Policy   Policy
	Observer Observer
}

func (g *Generator) Generate(ctx context.Context, id listings.ListingID, start time.Time, days int) (*listings.Property, []availability.DateInfo, error) {
	size, err := g.Policy.Size(days)
	if err != nil {
		return nil, nil, err
	}
	property, err := g.Listings.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	source, err := g.Sources.SourceFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	provider := availability.NewProvider(source, g.Policy.location())
	window := provider.GenerateWindow(g.Policy.Start(start), size)
	if g.Observer != nil {
		g.Observer.ObserveWindow(window)
	}
	return property, window, nil
}

// ObserveQuote reports a quote outcome when o is set.
func ObserveQuote(o Observer, outcome string) {
	if o != nil {
		o.ObserveQuote(outcome)
	}
}
