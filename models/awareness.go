package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AwarenessContent holds the structure for the awarenessContents collection
// in mongo. Titles and descriptions are bilingual.
type AwarenessContent struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Type          string             `json:"type,omitempty" bson:"type,omitempty"`
	TitleEn       string             `json:"titleEn" bson:"titleEn"`
	TitleBn       string             `json:"titleBn,omitempty" bson:"titleBn,omitempty"`
	DescriptionEn string             `json:"descriptionEn,omitempty" bson:"descriptionEn,omitempty"`
	DescriptionBn string             `json:"descriptionBn,omitempty" bson:"descriptionBn,omitempty"`
	Views         int32              `json:"views" bson:"views"`
	Downloads     int32              `json:"downloads" bson:"downloads"`
	CreatedAt     primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}

// ThreatAlert holds the structure for the threatAlerts collection in mongo
type ThreatAlert struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Level     string             `json:"level,omitempty" bson:"level,omitempty"`
	Message   string             `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
