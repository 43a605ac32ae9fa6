package databases

// go generate: mockery --name HelpDeskDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rcpp-platform/rcpp-api/models"
)

const helpDeskCollectionName = "helpDeskColl"

// HelpDeskDatabase contains the methods to use with the helpdesk collection
type HelpDeskDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.HelpDeskTicket, error)
	InsertOne(ctx context.Context, ticket models.HelpDeskTicket, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type helpDeskDatabase struct {
	db DatabaseHelper
}

// NewHelpDeskDatabase initializes a new instance of helpdesk database with the provided db connection
func NewHelpDeskDatabase(db DatabaseHelper) HelpDeskDatabase {
	return &helpDeskDatabase{
		db: db,
	}
}

func (h *helpDeskDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.HelpDeskTicket, error) {
	var tickets []models.HelpDeskTicket
	cur, err := h.db.Collection(helpDeskCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&tickets)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (h *helpDeskDatabase) InsertOne(ctx context.Context, ticket models.HelpDeskTicket, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return h.db.Collection(helpDeskCollectionName).InsertOne(ctx, ticket, opts...)
}

func (h *helpDeskDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return h.db.Collection(helpDeskCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (h *helpDeskDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return h.db.Collection(helpDeskCollectionName).CountDocuments(ctx, filter, opts...)
}
