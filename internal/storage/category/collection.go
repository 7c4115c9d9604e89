package category

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// categoryDoc is the BSON document shape for a category. ParentID is an
// empty string for root categories.
type categoryDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Name      string    `bson:"name"`
	Type      string    `bson:"category_type"`
	ParentID  string    `bson:"parent_id"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Collection provides access to the categories collection.
type Collection struct {
	coll *mongo.Collection
}

// Ensure Collection implements ICategoryCollection at compile time.
var _ ICategoryCollection = (*Collection)(nil)

// NewCollection creates a Collection bound to the given database.
func NewCollection(db *mongo.Database) *Collection {
	return &Collection{coll: db.Collection("categories")}
}

// EnsureIndexes creates the owner index used by list queries.
func (c *Collection) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func (c *Collection) Insert(ctx context.Context, record *Category) error {
	_, err := c.coll.InsertOne(ctx, docFromCategory(record))
	return err
}

func (c *Collection) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	var doc categoryDoc
	err := c.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return categoryFromDoc(&doc)
}

func (c *Collection) List(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	query := bson.M{}
	if filter != nil {
		if filter.UserID != nil {
			query["user_id"] = filter.UserID.String()
		}
		if filter.Type != "" {
			query["category_type"] = string(filter.Type)
		}
		if filter.ParentID != nil {
			query["parent_id"] = filter.ParentID.String()
		}
	}

	cursor, err := c.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]*Category, len(docs))
	for i := range docs {
		record, err := categoryFromDoc(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = record
	}
	return result, nil
}

func (c *Collection) Update(ctx context.Context, id uuid.UUID, patch *CategoryPatch) (*Category, error) {
	set := bson.M{}
	if v, ok := patch.Name.Get(); ok {
		set["name"] = v
	}
	if v, ok := patch.ParentID.Get(); ok {
		set["parent_id"] = parentToDoc(v)
	}
	if v, ok := patch.UpdatedAt.Get(); ok {
		set["updated_at"] = v
	}

	var doc categoryDoc
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
	return categoryFromDoc(&doc)
}

func (c *Collection) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func docFromCategory(record *Category) *categoryDoc {
	return &categoryDoc{
		ID:        record.ID.String(),
		UserID:    record.UserID.String(),
		Name:      record.Name,
		Type:      string(record.Type),
		ParentID:  parentToDoc(record.ParentID),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}

func categoryFromDoc(doc *categoryDoc) (*Category, error) {
	id, err := uuid.FromString(doc.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.FromString(doc.UserID)
	if err != nil {
		return nil, err
	}
	parentID := uuid.Nil
	if doc.ParentID != "" {
		parentID, err = uuid.FromString(doc.ParentID)
		if err != nil {
			return nil, err
		}
	}
	return &Category{
		ID:        id,
		UserID:    userID,
		Name:      doc.Name,
		Type:      CategoryType(doc.Type),
		ParentID:  parentID,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func parentToDoc(parentID uuid.UUID) string {
	if parentID == uuid.Nil {
		return ""
	}
	return parentID.String()
}
