package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewsItem holds the structure for the news collection in mongo
type NewsItem struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Content       string             `json:"content,omitempty" bson:"content,omitempty"`
	Category      string             `json:"category,omitempty" bson:"category,omitempty"`
	Image         string             `json:"image,omitempty" bson:"image,omitempty"`
	Date          primitive.DateTime `json:"date,omitempty" bson:"date,omitempty"`
	Views         int32              `json:"views" bson:"views"`
	Likes         int32              `json:"likes" bson:"likes"`
	CommentsCount int32              `json:"commentsCount" bson:"commentsCount"`
	IsFeatured    bool               `json:"isFeatured" bson:"isFeatured"`
	IsBreaking    bool               `json:"isBreaking" bson:"isBreaking"`
}

// Comment holds the structure for the comments collection in mongo. Comments
// reference their news item by id, they are not embedded.
type Comment struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	NewsID   primitive.ObjectID `json:"newsId" bson:"newsId"`
	UserName string             `json:"userName" bson:"userName"`
	Text     string             `json:"text" bson:"text"`
	Date     primitive.DateTime `json:"date,omitempty" bson:"date,omitempty"`
}
