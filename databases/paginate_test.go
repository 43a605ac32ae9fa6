package databases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/rcpp-platform/rcpp-api/databases"
)

func TestPaginate(t *testing.T) {
	opts := databases.Paginate(3, 10)
	assert.Equal(t, int64(10), *opts.Limit)
	assert.Equal(t, int64(20), *opts.Skip)
}

func TestPaginateFirstPageHasNoSkip(t *testing.T) {
	opts := databases.Paginate(1, 25)
	assert.Equal(t, int64(25), *opts.Limit)
	assert.Equal(t, int64(0), *opts.Skip)
}

func TestPaginateDefaultsBadInput(t *testing.T) {
	opts := databases.Paginate(0, -5)
	assert.Equal(t, int64(databases.DefaultPageSize), *opts.Limit)
	assert.Equal(t, int64(0), *opts.Skip)
}

func TestSearchFilterEmptyTermMatchesAll(t *testing.T) {
	filter := databases.SearchFilter("", "name", "email")
	assert.Equal(t, bson.M{}, filter)
}

func TestSearchFilterBuildsCaseInsensitiveOr(t *testing.T) {
	filter := databases.SearchFilter("rahim", "name", "email")

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, bson.M{"name": bson.M{"$regex": "rahim", "$options": "i"}}, or[0])
	assert.Equal(t, bson.M{"email": bson.M{"$regex": "rahim", "$options": "i"}}, or[1])
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), databases.TotalPages(0, 10))
	assert.Equal(t, int64(1), databases.TotalPages(10, 10))
	assert.Equal(t, int64(2), databases.TotalPages(11, 10))
	assert.Equal(t, int64(3), databases.TotalPages(25, 10))
}
