package databases

// go generate: mockery --name NewsDatabase
// go generate: mockery --name CommentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rcpp-platform/rcpp-api/models"
)

const (
	newsCollectionName    = "news"
	commentCollectionName = "comments"
)

// NewsDatabase contains the methods to use with the news collection
type NewsDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.NewsItem, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.NewsItem, error)
	InsertOne(ctx context.Context, item models.NewsItem, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error)
}

type newsDatabase struct {
	db DatabaseHelper
}

// NewNewsDatabase initializes a new instance of news database with the provided db connection
func NewNewsDatabase(db DatabaseHelper) NewsDatabase {
	return &newsDatabase{
		db: db,
	}
}

func (n *newsDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.NewsItem, error) {
	item := &models.NewsItem{}
	err := n.db.Collection(newsCollectionName).FindOne(ctx, filter, opts...).Decode(&item)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (n *newsDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.NewsItem, error) {
	var items []models.NewsItem
	cur, err := n.db.Collection(newsCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&items)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (n *newsDatabase) InsertOne(ctx context.Context, item models.NewsItem, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return n.db.Collection(newsCollectionName).InsertOne(ctx, item, opts...)
}

func (n *newsDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return n.db.Collection(newsCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (n *newsDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return n.db.Collection(newsCollectionName).DeleteOne(ctx, filter, opts...)
}

// CommentDatabase contains the methods to use with the comments collection
type CommentDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Comment, error)
	InsertOne(ctx context.Context, comment models.Comment, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type commentDatabase struct {
	db DatabaseHelper
}

// NewCommentDatabase initializes a new instance of comment database with the provided db connection
func NewCommentDatabase(db DatabaseHelper) CommentDatabase {
	return &commentDatabase{
		db: db,
	}
}

func (c *commentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Comment, error) {
	var comments []models.Comment
	cur, err := c.db.Collection(commentCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *commentDatabase) InsertOne(ctx context.Context, comment models.Comment, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(commentCollectionName).InsertOne(ctx, comment, opts...)
}
