package transaction

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

// transactionDoc is the BSON document shape for a transaction. The amount
// is stored as integer cents so period aggregation stays numeric.
type transactionDoc struct {
	ID                string    `bson:"_id"`
	UserID            string    `bson:"user_id"`
	AccountID         string    `bson:"account_id"`
	CategoryID        string    `bson:"category_id"`
	TransferAccountID string    `bson:"transfer_account_id"`
	AmountCents       int64     `bson:"amount_cents"`
	Type              string    `bson:"transaction_type"`
	OccurredAt        time.Time `bson:"occurred_at"`
	Description       string    `bson:"description"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

// Collection provides access to the transactions collection.
type Collection struct {
	coll *mongo.Collection
}

// Ensure Collection implements ITransactionCollection at compile time.
var _ ITransactionCollection = (*Collection)(nil)

// NewCollection creates a Collection bound to the given database.
func NewCollection(db *mongo.Database) *Collection {
	return &Collection{coll: db.Collection("transactions")}
}

// EnsureIndexes creates the indexes backing the referential guards and
// budget aggregation queries.
func (c *Collection) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
		{Keys: bson.D{{Key: "transfer_account_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "occurred_at", Value: 1}}},
	})
	return err
}

func (c *Collection) Insert(ctx context.Context, record *Transaction) error {
	_, err := c.coll.InsertOne(ctx, docFromTransaction(record))
	return err
}

func (c *Collection) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var doc transactionDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return transactionFromDoc(&doc)
}

func (c *Collection) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	query := bson.M{}
	if filter != nil {
		if filter.UserID != nil {
			query["user_id"] = filter.UserID.String()
		}
		if filter.AccountID != nil {
			query["account_id"] = filter.AccountID.String()
		}
		if filter.CategoryID != nil {
			query["category_id"] = filter.CategoryID.String()
		}
		if filter.Type != "" {
			query["transaction_type"] = string(filter.Type)
		}
		occurred := bson.M{}
		if filter.From != nil {
			occurred["$gte"] = *filter.From
		}
		if filter.To != nil {
			occurred["$lt"] = *filter.To
		}
		if len(occurred) > 0 {
			query["occurred_at"] = occurred
		}
	}

	sortOrder := bson.D{{Key: "occurred_at", Value: -1}, {Key: "_id", Value: 1}}
	cursor, err := c.coll.Find(ctx, query, options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, err
	}
	var docs []transactionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*Transaction, len(docs))
	for i := range docs {
		record, err := transactionFromDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = record
	}
	return result, nil
}

func (c *Collection) Update(ctx context.Context, id uuid.UUID, patch *TransactionPatch) (*Transaction, error) {
	set := bson.M{}
	if v, ok := patch.AccountID.Get(); ok {
		set["account_id"] = v.String()
	}
	if v, ok := patch.CategoryID.Get(); ok {
		set["category_id"] = v.String()
	}
	if v, ok := patch.TransferAccountID.Get(); ok {
		set["transfer_account_id"] = transferToDoc(v)
	}
	if v, ok := patch.Amount.Get(); ok {
		set["amount_cents"] = v.Round(2).Shift(2).IntPart()
	}
	if v, ok := patch.Type.Get(); ok {
		set["transaction_type"] = string(v)
	}
	if v, ok := patch.OccurredAt.Get(); ok {
		set["occurred_at"] = v
	}
	if v, ok := patch.Description.Get(); ok {
		set["description"] = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set["updated_at"] = v
	}

	var doc transactionDoc
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
	return transactionFromDoc(&doc)
}

func (c *Collection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (c *Collection) ExistsForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"account_id": accountID.String()},
		bson.M{"transfer_account_id": accountID.String()},
	}}
	return c.exists(ctx, query)
}

func (c *Collection) ExistsForCategory(ctx context.Context, categoryID uuid.UUID) (bool, error) {
	return c.exists(ctx, bson.M{"category_id": categoryID.String()})
}

func (c *Collection) ExistsForCategoryPeriod(ctx context.Context, categoryID uuid.UUID, year int, month time.Month) (bool, error) {
	start, end := PeriodBounds(year, month)
	query := bson.M{
		"category_id": categoryID.String(),
		"occurred_at": bson.M{"$gte": start, "$lt": end},
	}
	return c.exists(ctx, query)
}

func (c *Collection) SumForCategoryPeriod(ctx context.Context, categoryID uuid.UUID, year int, month time.Month, txType TransactionType, excludeID uuid.UUID) (decimal.Decimal, error) {
	start, end := PeriodBounds(year, month)
	match := bson.M{
		"category_id":      categoryID.String(),
		"transaction_type": string(txType),
		"occurred_at":      bson.M{"$gte": start, "$lt": end},
	}
	if excludeID != uuid.Nil {
		match["_id"] = bson.M{"$ne": excludeID.String()}
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$amount_cents"},
		}}},
	}
	cursor, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, err
	}
	var rows []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return decimal.New(rows[0].Total, -2), nil
}

func (c *Collection) exists(ctx context.Context, query bson.M) (bool, error) {
	count, err := c.coll.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func docFromTransaction(record *Transaction) *transactionDoc {
	return &transactionDoc{
		ID:                record.ID.String(),
		UserID:            record.UserID.String(),
		AccountID:         record.AccountID.String(),
		CategoryID:        record.CategoryID.String(),
		TransferAccountID: transferToDoc(record.TransferAccountID),
		AmountCents:       record.Amount.Round(2).Shift(2).IntPart(),
		Type:              string(record.Type),
		OccurredAt:        record.OccurredAt,
		Description:       record.Description,
		CreatedAt:         record.CreatedAt,
		UpdatedAt:         record.UpdatedAt,
	}
}

func transactionFromDoc(doc *transactionDoc) (*Transaction, error) {
	id, err := uuid.FromString(doc.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.FromString(doc.UserID)
	if err != nil {
		return nil, err
	}
	accountID, err := uuid.FromString(doc.AccountID)
	if err != nil {
		return nil, err
	}
	categoryID, err := uuid.FromString(doc.CategoryID)
	if err != nil {
		return nil, err
	}
	transferAccountID := uuid.Nil
	if doc.TransferAccountID != "" {
		transferAccountID, err = uuid.FromString(doc.TransferAccountID)
		if err != nil {
			return nil, err
		}
	}
	return &Transaction{
		ID:                id,
		UserID:            userID,
		AccountID:         accountID,
		CategoryID:        categoryID,
		TransferAccountID: transferAccountID,
		Amount:            decimal.New(doc.AmountCents, -2),
		Type:              TransactionType(doc.Type),
		OccurredAt:        doc.OccurredAt,
		Description:       doc.Description,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}, nil
}

func transferToDoc(transferAccountID uuid.UUID) string {
	if transferAccountID == uuid.Nil {
		return ""
	}
	return transferAccountID.String()
}
