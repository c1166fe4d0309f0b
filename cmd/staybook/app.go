package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	availabilityapp "staybook/internal/app/handlers/availability"
	listingapp "staybook/internal/app/handlers/listings"
	reservationapp "staybook/internal/app/handlers/reservations"
	selectionapp "staybook/internal/app/handlers/selection"
	"staybook/internal/app/inventory"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/app/queries"
	"staybook/internal/app/sessions"
	"staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/pricing"
	"staybook/internal/infra/config"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

const idempotencyTTL = 24 * time.Hour

// adapters are the storage and messaging ports the application runs on.
type adapters struct {
	listings    listings.Repository
	calendars   availability.CalendarRepository
	sessions    sessions.Store
	outbox      outbox.Outbox
	idempotency middleware.IdempotencyStore
	checks      map[string]obs.Check
	workers     []func(ctx context.Context) error
	closers     []func(ctx context.Context) error
}

func memoryAdapters(cfg config.Config, logger *slog.Logger, metrics *obs.Metrics) *adapters {
	return &adapters{
		listings:    memory.NewListingRepository(),
		calendars:   memory.NewCalendarRepository(),
		sessions:    memory.NewSessionStore(cfg.SessionTTL, metrics),
		outbox:      memory.NewOutbox(logger),
		idempotency: memory.NewIdempotencyStore(idempotencyTTL),
		checks:      map[string]obs.Check{},
	}
}

type application struct {
	commands commands.Bus
	queries  queries.Bus
	handlers ginserver.Handlers
}

func buildApplication(cfg config.Config, logger *slog.Logger, metrics *obs.Metrics, infra *adapters) application {
	var resolver inventory.Resolver = inventory.RandomResolver{}
	if cfg.AvailabilityMode == inventory.ModeCalendar {
		resolver = inventory.CalendarResolver{Calendars: infra.calendars}
	}
	generator := &inventory.Generator{
		Listings: infra.listings,
		Sources:  resolver,
		Policy: inventory.Policy{
			Location:   cfg.Timezone,
			Days:       cfg.WindowDays,
			FixedStart: cfg.WindowStart,
		},
		Observer: metrics,
	}
	deps := selectionapp.Deps{
		Listings:   infra.listings,
		Sessions:   infra.sessions,
		Outbox:     infra.outbox,
		Encoder:    outbox.JSONEventEncoder{Headers: obs.CorrelationHeaders},
		Calculator: pricing.Calculator{},
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler[selectionapp.StartSelectionCommand, dto.Selection](commandBus, &selectionapp.StartSelectionHandler{Deps: deps, Generator: generator})
	commands.RegisterHandler[selectionapp.PickDateCommand, dto.Selection](commandBus, &selectionapp.PickDateHandler{Deps: deps})
	commands.RegisterHandler[selectionapp.SetGuestsCommand, dto.Selection](commandBus, &selectionapp.SetGuestsHandler{Deps: deps})
	commands.RegisterHandler[selectionapp.ClearSelectionCommand, dto.Selection](commandBus, &selectionapp.ClearSelectionHandler{Deps: deps})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler[listingapp.GetOverviewQuery, dto.ListingOverview](queryBus, &listingapp.GetOverviewHandler{Listings: infra.listings})
	queries.RegisterHandler[availabilityapp.GetWindowQuery, dto.Window](queryBus, &availabilityapp.GetWindowHandler{Generator: generator})
	queries.RegisterHandler[reservationapp.GetQuoteQuery, dto.Quote](queryBus, &reservationapp.GetQuoteHandler{
		Listings:   infra.listings,
		Calculator: pricing.Calculator{},
		Observer:   metrics,
	})
	queries.RegisterHandler[selectionapp.GetSelectionQuery, dto.Selection](queryBus, &selectionapp.GetSelectionHandler{Deps: deps})

	cmds := middleware.ChainCommands(
		commandBus,
		middleware.CommandLogging(logger, metrics),
		middleware.Validation(),
		middleware.Idempotency(infra.idempotency, nil),
		middleware.OutboxFlush(infra.outbox),
	)
	qs := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger, metrics),
		middleware.QueryValidation(),
	)

	return application{
		commands: cmds,
		queries:  qs,
		handlers: ginserver.Handlers{
			Listing: ginserver.ListingHandler{
				Queries:  qs,
				Location: cfg.Timezone,
				Logger:   logger,
			},
			Selection: ginserver.SelectionHandler{
				Commands: cmds,
				Queries:  qs,
				Location: cfg.Timezone,
				Logger:   logger,
			},
			Metrics: metrics.Handler(),
		},
	}
}

// seedListings imports the fixture file. Calendars that already carry blocks are left
// alone so restarts do not clobber stored inventory.
func seedListings(ctx context.Context, cfg config.Config, infra *adapters, logger *slog.Logger) error {
	file, err := config.LoadListings(cfg.ListingsFixtures)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("listing fixtures file not found, skipping", "path", cfg.ListingsFixtures)
			return nil
		}
		return err
	}
	for _, fx := range file.Listings {
		property := fx.Property()
		if err := infra.listings.Save(ctx, property); err != nil {
			return fmt.Errorf("store listing %q: %w", fx.ID, err)
		}
		existing, err := infra.calendars.Calendar(ctx, property.ID)
		if err != nil {
			return fmt.Errorf("load calendar %q: %w", fx.ID, err)
		}
		if existing.Version > 0 {
			logger.Debug("calendar already stored, keeping it", "listing_id", fx.ID, "version", existing.Version)
			continue
		}
		cal, err := fx.Calendar(cfg)
		if err != nil {
			return err
		}
		if err := infra.calendars.Save(ctx, cal); err != nil {
			return fmt.Errorf("store calendar %q: %w", fx.ID, err)
		}
		logger.Info("listing fixture imported", "listing_id", fx.ID, "blocks", len(cal.Blocks))
	}
	return nil
}
