package databases

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultPageSize is applied whenever a listing request does not set a limit
const DefaultPageSize = 10

// Paginate builds the limit/skip find options for a 1-indexed page. Values
// below 1 fall back to the defaults, so page math never goes negative.
func Paginate(page, limit int64) *options.FindOptions {
	if limit < 1 {
		limit = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit
	return &options.FindOptions{Limit: &limit, Skip: &skip}
}

// SearchFilter builds a case-insensitive OR-of-substring filter over the
// given field list. An empty term matches everything.
func SearchFilter(term string, fields ...string) bson.M {
	if term == "" {
		return bson.M{}
	}
	orConditions := make([]bson.M, 0, len(fields))
	for _, field := range fields {
		orConditions = append(orConditions, bson.M{field: bson.M{"$regex": term, "$options": "i"}})
	}
	return bson.M{"$or": orConditions}
}

// TotalPages computes ceil(total/limit) for listing envelopes
func TotalPages(total, limit int64) int64 {
	if limit < 1 {
		limit = DefaultPageSize
	}
	return (total + limit - 1) / limit
}
