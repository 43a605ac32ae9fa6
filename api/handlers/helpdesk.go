package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// HelpDesk handles support ticket requests
type HelpDesk struct {
	DB           databases.HelpDeskDatabase
	Mailer       Mailer
	SupportEmail string
}

// CreateTicketHandler persists a helpdesk ticket and then notifies the
// support inbox. The write always wins: a failed notification is surfaced as
// a warning, never an abort.
func (h HelpDesk) CreateTicketHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var ticket models.HelpDeskTicket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if ticket.Name == "" || ticket.Email == "" || ticket.TechnicalSupport == "" || ticket.Description == "" {
		config.ErrorStatus("all fields are required", http.StatusBadRequest, w, nil)
		return
	}

	ticket.ID = primitive.NewObjectID()
	ticket.Read = false
	ticket.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := h.DB.InsertOne(context.Background(), ticket); err != nil {
		config.ErrorStatus("failed to save ticket", http.StatusInternalServerError, w, err)
		return
	}

	resp := models.Response{Success: true, Message: "request submitted successfully"}

	subject := fmt.Sprintf("Help Desk Request | %s", ticket.TechnicalSupport)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nIssue Type: %s\n\nDescription:\n%s\n",
		ticket.Name, ticket.Email, ticket.TechnicalSupport, ticket.Description)
	if err := h.Mailer.Send(h.SupportEmail, ticket.Email, subject, body); err != nil {
		zap.S().Errorw("failed to send helpdesk notification",
			"ticket", ticket.ID.Hex(),
			"error", err)
		resp.Warning = "notification email could not be sent"
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// TicketListHandler returns a paginated page of helpdesk tickets, newest
// first
func (h HelpDesk) TicketListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	page := getPage(r)
	limit := getLimit(r)

	opts := databases.Paginate(page, limit)
	opts.SetSort(bson.M{"createdAt": -1})
	tickets, err := h.DB.Find(context.Background(), bson.M{}, opts)
	if err != nil {
		config.ErrorStatus("failed to get tickets", http.StatusInternalServerError, w, err)
		return
	}
	if len(tickets) == 0 {
		tickets = []models.HelpDeskTicket{}
	}

	total, err := h.DB.CountDocuments(context.Background(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to count tickets", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.PagedTicketsResponse{
		Tickets:      tickets,
		TotalTickets: total,
		TotalPages:   databases.TotalPages(total, limit),
		CurrentPage:  page,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MarkTicketReadHandler flips the read flag on a ticket
func (h HelpDesk) MarkTicketReadHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ticketID := mux.Vars(r)["ticket_id"]

	tID, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	res, err := h.DB.UpdateOne(context.Background(), bson.M{"_id": tID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		config.ErrorStatus("failed to update ticket", http.StatusInternalServerError, w, err)
		return
	}
	if res.MatchedCount == 0 {
		config.ErrorStatus("ticket not found", http.StatusNotFound, w, nil)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{Success: true, Message: "ticket marked as read"})
}
