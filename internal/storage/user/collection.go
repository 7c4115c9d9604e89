package user

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userDoc is the BSON document shape for a user.
type userDoc struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	Email           string    `bson:"email"`
	DefaultCurrency string    `bson:"default_currency"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

// Collection provides access to the users collection.
type Collection struct {
	coll *mongo.Collection
}

// Ensure Collection implements IUserCollection at compile time.
var _ IUserCollection = (*Collection)(nil)

// NewCollection creates a Collection bound to the given database.
func NewCollection(db *mongo.Database) *Collection {
	return &Collection{coll: db.Collection("users")}
}

// EnsureIndexes creates the unique email index.
func (c *Collection) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (c *Collection) Insert(ctx context.Context, record *User) error {
	_, err := c.coll.InsertOne(ctx, docFromUser(record))
	return err
}

func (c *Collection) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var doc userDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userFromDoc(&doc)
}

func (c *Collection) FindByEmail(ctx context.Context, email string) (*User, error) {
	var doc userDoc
	err := c.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userFromDoc(&doc)
}

func (c *Collection) List(ctx context.Context, filter *UserFilter) ([]*User, error) {
	query := bson.M{}
	if filter != nil {
		if filter.Name != "" {
			query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Name), Options: "i"}
		}
		if filter.Email != "" {
			query["email"] = filter.Email
		}
	}

	cursor, err := c.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*User, len(docs))
	for i := range docs {
		record, err := userFromDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = record
	}
	return result, nil
}

func (c *Collection) Update(ctx context.Context, id uuid.UUID, patch *UserPatch) (*User, error) {
	set := bson.M{}
	if v, ok := patch.Name.Get(); ok {
		set["name"] = v
	}
	if v, ok := patch.DefaultCurrency.Get(); ok {
		set["default_currency"] = v
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set["updated_at"] = v
	}

	var doc userDoc
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
	return userFromDoc(&doc)
}

func (c *Collection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func docFromUser(record *User) *userDoc {
	return &userDoc{
		ID:              record.ID.String(),
		Name:            record.Name,
		Email:           record.Email,
		DefaultCurrency: record.DefaultCurrency,
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func userFromDoc(doc *userDoc) (*User, error) {
	id, err := uuid.FromString(doc.ID)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:              id,
		Name:            doc.Name,
		Email:           doc.Email,
		DefaultCurrency: doc.DefaultCurrency,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}, nil
}
