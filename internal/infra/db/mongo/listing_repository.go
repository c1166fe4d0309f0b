package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "staybook/internal/domain/listings"
	"staybook/internal/domain/shared/money"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("listings")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlistings.ErrNotFound
		}
		return nil, err
	}
	return doc.toProperty(), nil
}

func (r *ListingRepository) Save(ctx context.Context, p *domainlistings.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	doc := newPropertyDocument(p)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

type propertyDocument struct {
	ID           string      `bson:"_id"`
	Title        string      `bson:"title"`
	Location     string      `bson:"location"`
	Rating       float64     `bson:"rating"`
	ReviewCount  int         `bson:"review_count"`
	PropertyType string      `bson:"property_type"`
	Host         string      `bson:"host"`
	MaxGuests    int         `bson:"max_guests"`
	Bedrooms     int         `bson:"bedrooms"`
	Beds         int         `bson:"beds"`
	Bathrooms    int         `bson:"bathrooms"`
	NightlyRate  money.Money `bson:"nightly_rate"`
	CleaningFee  money.Money `bson:"cleaning_fee"`
	Description  string      `bson:"description"`
	Amenities    []string    `bson:"amenities"`
	Images       []string    `bson:"images"`
}

func newPropertyDocument(p *domainlistings.Property) propertyDocument {
	return propertyDocument{
		ID:           string(p.ID),
		Title:        p.Title,
		Location:     p.Location,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		PropertyType: p.PropertyType,
		Host:         p.Host,
		MaxGuests:    p.MaxGuests,
		Bedrooms:     p.Bedrooms,
		Beds:         p.Beds,
		Bathrooms:    p.Bathrooms,
		NightlyRate:  p.NightlyRate,
		CleaningFee:  p.CleaningFee,
		Description:  p.Description,
		Amenities:    append([]string(nil), p.Amenities...),
		Images:       append([]string(nil), p.Images...),
	}
}

func (d propertyDocument) toProperty() *domainlistings.Property {
	return &domainlistings.Property{
		ID:           domainlistings.ListingID(d.ID),
		Title:        d.Title,
		Location:     d.Location,
		Rating:       d.Rating,
		ReviewCount:  d.ReviewCount,
		PropertyType: d.PropertyType,
		Host:         d.Host,
		MaxGuests:    d.MaxGuests,
		Bedrooms:     d.Bedrooms,
		Beds:         d.Beds,
		Bathrooms:    d.Bathrooms,
		NightlyRate:  d.NightlyRate,
		CleaningFee:  d.CleaningFee,
		Description:  d.Description,
		Amenities:    d.Amenities,
		Images:       d.Images,
	}
}

var _ domainlistings.Repository = (*ListingRepository)(nil)
