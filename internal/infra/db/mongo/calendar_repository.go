package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "staybook/internal/domain/availability"
	"staybook/internal/domain/listings"
	"staybook/internal/domain/shared/daterange"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

// CalendarRepository stores blocked ranges as calendar days so they read back in
// the service zone.
type CalendarRepository struct {
	col      *mongo.Collection
	location *time.Location
}

func NewCalendarRepository(db *mongo.Database, loc *time.Location) *CalendarRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarRepository{col: db.Collection("agg_availability"), location: loc}
}

func (r *CalendarRepository) Calendar(ctx context.Context, id listings.ListingID) (*domainavailability.Calendar, error) {
	var doc calendarDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainavailability.NewCalendar(id), nil
		}
		return nil, err
	}
	return doc.toAggregate(r.location)
}

// Save writes the calendar if nobody else saved it since it was read.
func (r *CalendarRepository) Save(ctx context.Context, cal *domainavailability.Calendar) error {
	doc := newCalendarDocument(cal)
	filter := bson.M{"_id": doc.ID, "version": cal.Version}
	doc.Version = cal.Version + 1
	res, err := r.col.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	cal.Version = doc.Version
	return nil
}

type calendarDocument struct {
	ID      string          `bson:"_id"`
	Blocks  []blockDocument `bson:"blocks"`
	Version int64           `bson:"version"`
}

type blockDocument struct {
	From      string    `bson:"from"`
	To        string    `bson:"to"`
	Reason    string    `bson:"reason"`
	Reference string    `bson:"reference"`
	CreatedAt time.Time `bson:"created_at"`
}

func newCalendarDocument(cal *domainavailability.Calendar) calendarDocument {
	doc := calendarDocument{ID: string(cal.ListingID), Version: cal.Version, Blocks: make([]blockDocument, 0, len(cal.Blocks))}
	for _, b := range cal.Blocks {
		doc.Blocks = append(doc.Blocks, blockDocument{
			From:      b.Range.From.Format(time.DateOnly),
			To:        b.Range.To.Format(time.DateOnly),
			Reason:    string(b.Reason),
			Reference: b.Reference,
			CreatedAt: b.CreatedAt,
		})
	}
	return doc
}

func (d calendarDocument) toAggregate(loc *time.Location) (*domainavailability.Calendar, error) {
	cal := domainavailability.NewCalendar(listings.ListingID(d.ID))
	cal.Version = d.Version
	for _, b := range d.Blocks {
		r, err := daterange.New(mustParse(b.From, loc), mustParse(b.To, loc), loc)
		if err != nil {
			return nil, fmt.Errorf("calendar %s block %s: %w", d.ID, b.Reference, err)
		}
		cal.Blocks = append(cal.Blocks, domainavailability.Block{
			Range:     r,
			Reason:    domainavailability.BlockReason(b.Reason),
			Reference: b.Reference,
			CreatedAt: b.CreatedAt,
		})
	}
	return cal, nil
}

// mustParse yields the zero time for malformed values, which daterange.New rejects.
func mustParse(value string, loc *time.Location) time.Time {
	t, err := daterange.Parse(value, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

var _ domainavailability.CalendarRepository = (*CalendarRepository)(nil)
