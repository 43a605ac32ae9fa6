package databases

// go generate: mockery --name AwarenessDatabase
// go generate: mockery --name ThreatAlertDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rcpp-platform/rcpp-api/models"
)

const (
	awarenessCollectionName   = "awarenessContents"
	threatAlertCollectionName = "threatAlerts"
)

// AwarenessDatabase contains the methods to use with the awareness content collection
type AwarenessDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.AwarenessContent, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AwarenessContent, error)
	InsertOne(ctx context.Context, content models.AwarenessContent, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type awarenessDatabase struct {
	db DatabaseHelper
}

// NewAwarenessDatabase initializes a new instance of awareness database with the provided db connection
func NewAwarenessDatabase(db DatabaseHelper) AwarenessDatabase {
	return &awarenessDatabase{
		db: db,
	}
}

func (a *awarenessDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.AwarenessContent, error) {
	content := &models.AwarenessContent{}
	err := a.db.Collection(awarenessCollectionName).FindOne(ctx, filter, opts...).Decode(&content)
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (a *awarenessDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.AwarenessContent, error) {
	var contents []models.AwarenessContent
	cur, err := a.db.Collection(awarenessCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&contents)
	if err != nil {
		return nil, err
	}
	return contents, nil
}

func (a *awarenessDatabase) InsertOne(ctx context.Context, content models.AwarenessContent, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return a.db.Collection(awarenessCollectionName).InsertOne(ctx, content, opts...)
}

func (a *awarenessDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return a.db.Collection(awarenessCollectionName).UpdateOne(ctx, filter, update, opts...)
}

// ThreatAlertDatabase contains the methods to use with the threat alert collection
type ThreatAlertDatabase interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ThreatAlert, error)
}

type threatAlertDatabase struct {
	db DatabaseHelper
}

// NewThreatAlertDatabase initializes a new instance of threat alert database with the provided db connection
func NewThreatAlertDatabase(db DatabaseHelper) ThreatAlertDatabase {
	return &threatAlertDatabase{
		db: db,
	}
}

func (t *threatAlertDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ThreatAlert, error) {
	var alerts []models.ThreatAlert
	cur, err := t.db.Collection(threatAlertCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = cur.Decode(&alerts)
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
