package budget

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// budgetDoc is the BSON document shape for a budget. The amount is stored
// as integer cents.
type budgetDoc struct {
	ID              string    `bson:"_id"`
	UserID          string    `bson:"user_id"`
	CategoryID      string    `bson:"category_id"`
	Year            int       `bson:"year"`
	Month           int       `bson:"month"`
	AmountCents     int64     `bson:"amount_cents"`
	AlertPercentage int       `bson:"alert_percentage"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

// Collection provides access to the budgets collection.
type Collection struct {
	coll *mongo.Collection
}

// Ensure Collection implements IBudgetCollection at compile time.
var _ IBudgetCollection = (*Collection)(nil)

// NewCollection creates a Collection bound to the given database.
func NewCollection(db *mongo.Database) *Collection {
	return &Collection{coll: db.Collection("budgets")}
}

// EnsureIndexes creates the unique period index backing the
// one-budget-per-period invariant.
func (c *Collection) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "category_id", Value: 1},
			{Key: "year", Value: 1},
			{Key: "month", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (c *Collection) Insert(ctx context.Context, record *Budget) error {
	_, err := c.coll.InsertOne(ctx, docFromBudget(record))
	return err
}

func (c *Collection) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	var doc budgetDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return budgetFromDoc(&doc)
}

func (c *Collection) FindByPeriod(ctx context.Context, userID, categoryID uuid.UUID, year int, month time.Month) (*Budget, error) {
	query := bson.M{
		"user_id":     userID.String(),
		"category_id": categoryID.String(),
		"year":        year,
		"month":       int(month),
	}
	var doc budgetDoc
	err := c.coll.FindOne(ctx, query).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return budgetFromDoc(&doc)
}

func (c *Collection) List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error) {
	query := bson.M{}
	if filter != nil {
		if filter.UserID != nil {
			query["user_id"] = filter.UserID.String()
		}
		if filter.CategoryID != nil {
			query["category_id"] = filter.CategoryID.String()
		}
		if filter.Year != 0 {
			query["year"] = filter.Year
		}
		if filter.Month != 0 {
			query["month"] = int(filter.Month)
		}
	}

	sortOrder := bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}, {Key: "_id", Value: 1}}
	cursor, err := c.coll.Find(ctx, query, options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, err
	}
	var docs []budgetDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*Budget, len(docs))
	for i := range docs {
		record, err := budgetFromDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = record
	}
	return result, nil
}

func (c *Collection) Update(ctx context.Context, id uuid.UUID, patch *BudgetPatch) (*Budget, error) {
	set := bson.M{}
	if v, ok := patch.Amount.Get(); ok {
		set["amount_cents"] = v.Round(2).Shift(2).IntPart()
	}
	if v, ok := patch.AlertPercentage.Get(); ok {
		set["alert_percentage"] = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set["updated_at"] = v
	}

	var doc budgetDoc
	err := c.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id.String()},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return budgetFromDoc(&doc)
}

func (c *Collection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func docFromBudget(record *Budget) *budgetDoc {
	return &budgetDoc{
		ID:              record.ID.String(),
		UserID:          record.UserID.String(),
		CategoryID:      record.CategoryID.String(),
		Year:            record.Year,
		Month:           int(record.Month),
		AmountCents:     record.Amount.Round(2).Shift(2).IntPart(),
		AlertPercentage: record.AlertPercentage,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func budgetFromDoc(doc *budgetDoc) (*Budget, error) {
	id, err := uuid.FromString(doc.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.FromString(doc.UserID)
	if err != nil {
		return nil, err
	}
	categoryID, err := uuid.FromString(doc.CategoryID)
	if err != nil {
		return nil, err
	}
	return &Budget{
		ID:              id,
		UserID:          userID,
		CategoryID:      categoryID,
		Year:            doc.Year,
		Month:           time.Month(doc.Month),
		Amount:          decimal.New(doc.AmountCents, -2),
		AlertPercentage: doc.AlertPercentage,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}
