package repository

import (
	"context"

	"github.com/code2244/bloglist/internal/model"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// blogDocument is the stored shape of a blog.
//
// Version is the "__v" key older writers of this collection maintain. It
// is written as 0 and left untouched by updates.
type blogDocument struct {
	ID      primitive.ObjectID `bson:"_id"`
	Title   string             `bson:"title"`
	Author  string             `bson:"author,omitempty"`
	URL     string             `bson:"url"`
	Likes   int                `bson:"likes"`
	Version int                `bson:"__v"`
}

func (d blogDocument) toModel() model.Blog {
	return model.Blog{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
	}
}

// MongoBlogRepository stores blogs in a MongoDB collection.
type MongoBlogRepository struct {
	coll *mongo.Collection
}

func NewMongoBlogRepository(coll *mongo.Collection) *MongoBlogRepository {
	return &MongoBlogRepository{coll: coll}
}

// FindAll returns every blog in natural order. An empty collection yields
// an empty, non-nil slice.
func (r *MongoBlogRepository) FindAll(ctx context.Context) ([]model.Blog, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "find blogs")
	}
	defer cursor.Close(ctx)

	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode blogs")
	}

	blogs := make([]model.Blog, 0, len(docs))
	for _, d := range docs {
		blogs = append(blogs, d.toModel())
	}
	return blogs, nil
}

func (r *MongoBlogRepository) Insert(ctx context.Context, fields model.BlogFields) (*model.Blog, error) {
	doc := blogDocument{
		ID:     primitive.NewObjectID(),
		Title:  fields.Title,
		Author: fields.Author,
		URL:    fields.URL,
		Likes:  fields.Likes,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "insert blog")
	}

	blog := doc.toModel()
	return &blog, nil
}

// DeleteByID removes the blog. It returns ErrNotFound when nothing matched.
func (r *MongoBlogRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete blog %s", id)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceByID overwrites title, author, url and likes in one atomic
// operation. An empty author removes the key from the document.
func (r *MongoBlogRepository) ReplaceByID(ctx context.Context, id string, fields model.BlogFields) (*model.Blog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{
		"title": fields.Title,
		"url":   fields.URL,
		"likes": fields.Likes,
	}
	update := bson.M{"$set": set}
	if fields.Author != "" {
		set["author"] = fields.Author
	} else {
		update["$unset"] = bson.M{"author": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc blogDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "replace blog %s", id)
	}

	blog := doc.toModel()
	return &blog, nil
}
