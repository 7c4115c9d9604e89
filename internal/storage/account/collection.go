package account

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// accountDoc is the BSON document shape for an account. Monetary values
// are stored as integer cents so range queries stay numeric.
type accountDoc struct {
	ID                  string    `bson:"_id"`
	UserID              string    `bson:"user_id"`
	Name                string    `bson:"name"`
	Type                string    `bson:"account_type"`
	Currency            string    `bson:"currency"`
	Description         string    `bson:"description"`
	MinimumBalanceCents int64     `bson:"minimum_balance_cents"`
	BalanceCents        int64     `bson:"balance_cents"`
	CreatedAt           time.Time `bson:"created_at"`
	UpdatedAt           time.Time `bson:"updated_at"`
}

// Collection provides access to the accounts collection.
type Collection struct {
	coll *mongo.Collection
}

// Ensure Collection implements IAccountCollection at compile time.
var _ IAccountCollection = (*Collection)(nil)

// NewCollection creates a Collection bound to the given database.
func NewCollection(db *mongo.Database) *Collection {
	return &Collection{coll: db.Collection("accounts")}
}

// EnsureIndexes creates the owner index used by list queries.
func (c *Collection) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func (c *Collection) Insert(ctx context.Context, record *Account) error {
	_, err := c.coll.InsertOne(ctx, docFromAccount(record))
	return err
}

func (c *Collection) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	var doc accountDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return accountFromDoc(&doc)
}

func (c *Collection) List(ctx context.Context, filter *AccountFilter) ([]*Account, error) {
	query := bson.M{}
	if filter != nil {
		if filter.UserID != nil {
			query["user_id"] = filter.UserID.String()
		}
		if filter.Type != "" {
			query["account_type"] = string(filter.Type)
		}
		if filter.Currency != "" {
			query["currency"] = filter.Currency
		}
		if filter.Name != "" {
			query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
		}
	}

	cursor, err := c.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []accountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*Account, len(docs))
	for i := range docs {
		record, err := accountFromDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = record
	}
	return result, nil
}

func (c *Collection) Update(ctx context.Context, id uuid.UUID, patch *AccountPatch) (*Account, error) {
	set := bson.M{}
	if v, ok := patch.Name.Get(); ok {
		set["name"] = v
	}
	if v, ok := patch.Type.Get(); ok {
		set["account_type"] = string(v)
	}
	if v, ok := patch.Currency.Get(); ok {
		set["currency"] = v
	}
	if v, ok := patch.Description.Get(); ok {
		set["description"] = v
	}
	if v, ok := patch.MinimumBalance.Get(); ok {
		set["minimum_balance_cents"] = centsFromDecimal(v)
	}
	if v, ok := patch.Balance.Get(); ok {
		set["balance_cents"] = centsFromDecimal(v)
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set["updated_at"] = v
	}

	var doc accountDoc
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
	return accountFromDoc(&doc)
}

func (c *Collection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func docFromAccount(record *Account) *accountDoc {
	return &accountDoc{
		ID:                  record.ID.String(),
		UserID:              record.UserID.String(),
		Name:                record.Name,
		Type:                string(record.Type),
		Currency:            record.Currency,
		Description:         record.Description,
		MinimumBalanceCents: centsFromDecimal(record.MinimumBalance),
		BalanceCents:        centsFromDecimal(record.Balance),
		CreatedAt:           record.CreatedAt,
		UpdatedAt:           record.UpdatedAt,
	}
}

func accountFromDoc(doc *accountDoc) (*Account, error) {
	id, err := uuid.FromString(doc.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.FromString(doc.UserID)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:             id,
		UserID:         userID,
		Name:           doc.Name,
		Type:           AccountType(doc.Type),
		Currency:       doc.Currency,
		Description:    doc.Description,
		MinimumBalance: decimalFromCents(doc.MinimumBalanceCents),
		Balance:        decimalFromCents(doc.BalanceCents),
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

func centsFromDecimal(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

func decimalFromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
