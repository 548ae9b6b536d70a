package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fincore/internal/models"
)

const filingsCollection = "filings"

// filingDocument is the MongoDB shape of a filing record: figures nested
// under "financials" and provenance under "metadata", mirroring the
// document-viewer layout. Pointer fields marshal to null when absent.
type filingDocument struct {
	Ticker     string           `bson:"ticker"`
	Year       int              `bson:"year"`
	Quarter    int              `bson:"quarter"`
	ReportType string           `bson:"report_type"`
	Timestamp  time.Time        `bson:"timestamp"`
	Financials filingFinancials `bson:"financials"`
	Metadata   filingMetadata   `bson:"metadata"`
	AuditPass  bool             `bson:"audit_pass"`
}

type filingFinancials struct {
	Revenue            *float64 `bson:"revenue"`
	NetIncome          *float64 `bson:"net_income"`
	TotalAssets        *float64 `bson:"total_assets"`
	TotalLiabilities   *float64 `bson:"total_liabilities"`
	Equity             *float64 `bson:"equity"`
	CurrentAssets      *float64 `bson:"current_assets"`
	CurrentLiabilities *float64 `bson:"current_liabilities"`
	RetainedEarnings   *float64 `bson:"retained_earnings"`
	EBIT               *float64 `bson:"ebit"`
	MarketValueEquity  *float64 `bson:"market_value_equity"`
}

type filingMetadata struct {
	CompanyName string `bson:"company_name,omitempty"`
	CIK         string `bson:"cik,omitempty"`
	FilingDate  string `bson:"filing_date,omitempty"`
}

// MongoFilingRepository stores filing records as documents in the filings
// collection
type MongoFilingRepository struct {
	collection *mongo.Collection
}

// NewMongoFilingRepository creates a new MongoFilingRepository
func NewMongoFilingRepository(db *mongo.Database) *MongoFilingRepository {
	return &MongoFilingRepository{collection: db.Collection(filingsCollection)}
}

func toDocument(rec *models.FilingRecord) filingDocument {
	doc := filingDocument{
		Ticker:     strings.ToUpper(rec.Ticker),
		Year:       rec.Year,
		Quarter:    rec.Quarter,
		ReportType: "10-K",
		Timestamp:  rec.FetchedAt.UTC(),
		Financials: filingFinancials{
			Revenue:            rec.Revenue,
			NetIncome:          rec.NetIncome,
			TotalAssets:        rec.TotalAssets,
			TotalLiabilities:   rec.TotalLiabilities,
			Equity:             rec.Equity,
			CurrentAssets:      rec.CurrentAssets,
			CurrentLiabilities: rec.CurrentLiabilities,
			RetainedEarnings:   rec.RetainedEarnings,
			EBIT:               rec.EBIT,
			MarketValueEquity:  rec.MarketValueEquity,
		},
		Metadata: filingMetadata{
			CompanyName: rec.CompanyName,
			CIK:         rec.CIK,
		},
		AuditPass: rec.AuditPass,
	}
	if rec.FilingDate != nil {
		doc.Metadata.FilingDate = rec.FilingDate.Format("2006-01-02")
	}
	return doc
}

func fromDocument(doc *filingDocument) *models.FilingRecord {
	rec := &models.FilingRecord{
		Ticker:             doc.Ticker,
		Year:               doc.Year,
		Quarter:            doc.Quarter,
		Revenue:            doc.Financials.Revenue,
		NetIncome:          doc.Financials.NetIncome,
		TotalAssets:        doc.Financials.TotalAssets,
		TotalLiabilities:   doc.Financials.TotalLiabilities,
		Equity:             doc.Financials.Equity,
		CurrentAssets:      doc.Financials.CurrentAssets,
		CurrentLiabilities: doc.Financials.CurrentLiabilities,
		RetainedEarnings:   doc.Financials.RetainedEarnings,
		EBIT:               doc.Financials.EBIT,
		MarketValueEquity:  doc.Financials.MarketValueEquity,
		CompanyName:        doc.Metadata.CompanyName,
		CIK:                doc.Metadata.CIK,
		AuditPass:          doc.AuditPass,
		FetchedAt:          doc.Timestamp,
	}
	if doc.Metadata.FilingDate != "" {
		if t, err := time.Parse("2006-01-02", doc.Metadata.FilingDate); err == nil {
			rec.FilingDate = &models.FlexibleDate{Time: t}
		}
	}
	return rec
}

// Upsert inserts or replaces the document for (ticker, year, quarter)
func (r *MongoFilingRepository) Upsert(ctx context.Context, rec *models.FilingRecord) error {
	doc := toDocument(rec)
	filter := bson.M{"ticker": doc.Ticker, "year": doc.Year, "quarter": doc.Quarter}

	_, err := r.collection.UpdateOne(ctx, filter,
		bson.M{"$set": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert filing document for %s: %w", rec.Ticker, err)
	}
	return nil
}

// Get returns the most recent stored record for a ticker
func (r *MongoFilingRepository) Get(ctx context.Context, ticker string) (*models.FilingRecord, error) {
	filter := bson.M{"ticker": strings.ToUpper(ticker)}
	opts := options.FindOne().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "quarter", Value: -1}})

	var doc filingDocument
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query filing document for %s: %w", ticker, err)
	}
	return fromDocument(&doc), nil
}

// GetAll returns every stored record
func (r *MongoFilingRepository) GetAll(ctx context.Context) ([]*models.FilingRecord, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "ticker", Value: 1}, {Key: "year", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query filing documents: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*models.FilingRecord
	for cursor.Next(ctx) {
		var doc filingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode filing document: %w", err)
		}
		result = append(result, fromDocument(&doc))
	}
	return result, cursor.Err()
}

// List returns stored company metadata
func (r *MongoFilingRepository) List(ctx context.Context) ([]*models.CompanyListItem, error) {
	records, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*models.CompanyListItem, 0, len(records))
	for _, rec := range records {
		result = append(result, &models.CompanyListItem{
			Ticker:      rec.Ticker,
			Period:      rec.Period(),
			CompanyName: rec.CompanyName,
			AuditPass:   rec.AuditPass,
		})
	}
	return result, nil
}

// Count returns the number of stored documents
func (r *MongoFilingRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count filing documents: %w", err)
	}
	return count, nil
}

// GetRawDocument returns the stored document for a ticker as-is, for the
// document viewer. The Mongo _id is stripped.
func (r *MongoFilingRepository) GetRawDocument(ctx context.Context, ticker string) (bson.M, error) {
	filter := bson.M{"ticker": strings.ToUpper(ticker)}
	opts := options.FindOne().
		SetSort(bson.D{{Key: "year", Value: -1}, {Key: "quarter", Value: -1}}).
		SetProjection(bson.M{"_id": 0})

	var doc bson.M
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query raw document for %s: %w", ticker, err)
	}
	return doc, nil
}
