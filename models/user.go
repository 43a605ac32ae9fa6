package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User holds the structure for the users collection in mongo
type User struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Password      string             `json:"password,omitempty" bson:"password,omitempty"`
	Role          string             `json:"role" bson:"role"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Status        string             `json:"status,omitempty" bson:"status,omitempty"`
	Division      string             `json:"division,omitempty" bson:"division,omitempty"`
	District      string             `json:"district,omitempty" bson:"district,omitempty"`
	Upazila       string             `json:"upazila,omitempty" bson:"upazila,omitempty"`
	Bio           string             `json:"bio,omitempty" bson:"bio,omitempty"`
	ProfileImage  string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	EmailVerified bool               `json:"email_verified" bson:"email_verified"`
	CreatedAt     primitive.DateTime `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt     primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// SanitizedUser is the projection of a user returned by auth endpoints. It
// never carries the password hash.
type SanitizedUser struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	ProfileImage string `json:"profileImage"`
}

// Sanitize strips the credential fields from a user record
func (u User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
	}
}
