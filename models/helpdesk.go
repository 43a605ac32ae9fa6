package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// HelpDeskTicket holds the structure for the helpDeskColl collection in mongo
type HelpDeskTicket struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	TechnicalSupport string             `json:"technicalSupport" bson:"technicalSupport"`
	Description      string             `json:"description" bson:"description"`
	Read             bool               `json:"read" bson:"read"`
	CreatedAt        primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
}
