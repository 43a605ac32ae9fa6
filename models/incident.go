package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Incident statuses. A report is created as StatusPending and may move to
// exactly one of the terminal statuses below.
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
	StatusRejected = "rejected"
)

// Incident holds the structure for the reportIncidentColl collection in mongo
type Incident struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	TicketNumber string             `json:"ticketNumber" bson:"ticketNumber"`
	IncidentType string             `json:"incidentType" bson:"incidentType"`
	Urgency      string             `json:"urgency,omitempty" bson:"urgency,omitempty"`
	Title        string             `json:"title" bson:"title"`
	Description  string             `json:"description,omitempty" bson:"description,omitempty"`
	IncidentDate string             `json:"incidentDate,omitempty" bson:"incidentDate,omitempty"`
	ContactInfo  ContactInfo        `json:"contactInfo" bson:"contactInfo"`
	Evidence     []EvidenceFile     `json:"evidence,omitempty" bson:"evidence,omitempty"`
	Status       string             `json:"status" bson:"status"`
	AssignedTo   *Assignee          `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	AssignedAt   primitive.DateTime `json:"assignedAt,omitempty" bson:"assignedAt,omitempty"`
	SubmittedAt  primitive.DateTime `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	UpdatedAt    primitive.DateTime `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ContactInfo is the reporter's contact block embedded in an incident
type ContactInfo struct {
	FullName string `json:"fullName" bson:"fullName"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// EvidenceFile references an uploaded evidence file by its stored name
type EvidenceFile struct {
	Name     string `json:"name" bson:"name"`
	Path     string `json:"path" bson:"path"`
	MimeType string `json:"mimeType,omitempty" bson:"mimeType,omitempty"`
}

// Assignee is a point-in-time copy of the assigned user's identity. Later
// edits to the user record do not update it.
type Assignee struct {
	ID    primitive.ObjectID `json:"id" bson:"id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
}
