package databases

// go generate: mockery --name IncidentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rcpp-platform/rcpp-api/models"
)

const incidentCollectionName = "reportIncidentColl"

// IncidentDatabase contains the methods to use with the incident report collection
type IncidentDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Incident, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Incident, error)
	InsertOne(ctx context.Context, incident models.Incident, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorHelper, error)
}

type incidentDatabase struct {
	db DatabaseHelper
}

// NewIncidentDatabase initializes a new instance of incident database with the provided db connection
func NewIncidentDatabase(db DatabaseHelper) IncidentDatabase {
	return &incidentDatabase{
		db: db,
	}
}

func (c *incidentDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Incident, error) {
	incident := &models.Incident{}
	err := c.db.Collection(incidentCollectionName).FindOne(ctx, filter, opts...).Decode(&incident)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

func (c *incidentDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Incident, error) {
	var incidents []models.Incident
	cur, err := c.db.Collection(incidentCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&incidents)
	if err != nil {
		return nil, err
	}
	return incidents, nil
}

func (c *incidentDatabase) InsertOne(ctx context.Context, incident models.Incident, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return c.db.Collection(incidentCollectionName).InsertOne(ctx, incident, opts...)
}

func (c *incidentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(incidentCollectionName).UpdateOne(ctx, filter, update, opts...)
}

func (c *incidentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(incidentCollectionName).CountDocuments(ctx, filter, opts...)
}

func (c *incidentDatabase) Aggregate(ctx context.Context, pipeline interface{}, opts ...*options.AggregateOptions) (CursorHelper, error) {
	return c.db.Collection(incidentCollectionName).Aggregate(ctx, pipeline, opts...)
}
