package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// Case exported for testing purposes
type Case struct {
	DB  databases.IncidentDatabase
	UDB databases.UserDatabase
}

type submitCaseResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TicketNumber string `json:"ticketNumber"`
}

// newTicketNumber draws six random digits. Collisions are possible but the
// pairwise probability is about 1/900000, accepted rather than guarded.
func newTicketNumber() string {
	return fmt.Sprintf("RCPP-%d", 100000+rand.Intn(900000))
}

// SubmitCaseHandler persists a citizen incident report with a generated
// ticket number and the implicit pending status
func (c Case) SubmitCaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var incident models.Incident
	if err := json.NewDecoder(r.Body).Decode(&incident); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	incident.ID = primitive.NewObjectID()
	incident.TicketNumber = newTicketNumber()
	incident.Status = models.StatusPending
	incident.AssignedTo = nil
	incident.SubmittedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := c.DB.InsertOne(context.Background(), incident); err != nil {
		config.ErrorStatus("failed to save report to database", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(submitCaseResponse{
		Success:      true,
		Message:      "Report submitted successfully",
		TicketNumber: incident.TicketNumber,
	})
}

// CaseListHandler returns a newest-first page of cases, optionally filtered
// by a case-insensitive substring match on title, reporter name or type
func (c Case) CaseListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	page := getPage(r)
	limit := getLimit(r)

	filter := databases.SearchFilter(q, "title", "contactInfo.fullName", "incidentType")

	opts := databases.Paginate(page, limit)
	opts.SetSort(bson.M{"_id": -1})
	cases, err := c.DB.Find(context.Background(), filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get cases", http.StatusInternalServerError, w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Incident{}
	}

	total, err := c.DB.CountDocuments(context.Background(), filter)
	if err != nil {
		config.ErrorStatus("failed to count cases", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.PagedCasesResponse{
		Cases:       cases,
		TotalCases:  total,
		TotalPages:  databases.TotalPages(total, limit),
		CurrentPage: page,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseByIDHandler returns a case by ID
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	incident, err := c.DB.FindOne(context.Background(), bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("case not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(models.Response{Success: true, Data: incident})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseByTicketHandler returns a case by its human-readable ticket number
func (c Case) CaseByTicketHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ticket := mux.Vars(r)["ticket"]

	incident, err := c.DB.FindOne(context.Background(), bson.M{"ticketNumber": ticket})
	if err != nil {
		config.ErrorStatus("case not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(models.Response{Success: true, Data: incident})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AssignCaseHandler resolves the target user and writes a point-in-time
// snapshot of their identity onto the case. The snapshot is not kept in sync
// with later directory edits.
func (c Case) AssignCaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.UserID == "" {
		config.ErrorStatus("user ID is required", http.StatusBadRequest, w, nil)
		return
	}

	uID, err := primitive.ObjectIDFromHex(body.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	user, err := c.UDB.FindOne(context.Background(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("user not found", http.StatusNotFound, w, err)
		return
	}

	res, err := c.DB.UpdateOne(context.Background(), bson.M{"_id": cID}, bson.M{"$set": bson.M{
		"assignedTo": models.Assignee{ID: user.ID, Name: user.Name, Email: user.Email},
		"assignedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to assign case", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("case not found", http.StatusNotFound, w, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{Success: true, Message: "user assigned successfully"})
}

// UpdateCaseStatusHandler moves a case to one of the terminal statuses. Any
// other target is rejected before a store call is made.
func (c Case) UpdateCaseStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.Status != models.StatusResolved && body.Status != models.StatusRejected {
		config.ErrorStatus("invalid status", http.StatusBadRequest, w, nil)
		return
	}

	res, err := c.DB.UpdateOne(context.Background(), bson.M{"_id": cID}, bson.M{"$set": bson.M{
		"status":    body.Status,
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to update status", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("case not found", http.StatusNotFound, w, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{Success: true, Message: "status updated successfully"})
}

// AssignedCasesHandler returns all cases whose assignment snapshot points at
// the given user, newest assignment first
func (c Case) AssignedCasesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	cases, err := c.DB.Find(context.Background(), bson.M{"assignedTo.id": uID},
		options.Find().SetSort(bson.M{"assignedAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get assigned cases", http.StatusInternalServerError, w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Incident{}
	}

	b, err := json.Marshal(models.Response{Success: true, Data: cases})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
