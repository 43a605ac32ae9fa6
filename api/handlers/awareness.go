package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// Awareness serves the awareness content feed and threat alerts
type Awareness struct {
	DB  databases.AwarenessDatabase
	TDB databases.ThreatAlertDatabase
}

// AwarenessListHandler returns awareness contents, optionally filtered by
// type and by a bilingual substring search
func (a Awareness) AwarenessListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	contentType := r.URL.Query().Get("type")
	q := r.URL.Query().Get("q")

	filter := databases.SearchFilter(q, "titleEn", "titleBn", "descriptionEn", "descriptionBn")
	if contentType != "" && contentType != "all" {
		filter["type"] = contentType
	}

	contents, err := a.DB.Find(context.Background(), filter,
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		config.ErrorStatus("failed to get awareness contents", http.StatusInternalServerError, w, err)
		return
	}
	if len(contents) == 0 {
		contents = []models.AwarenessContent{}
	}

	b, err := json.Marshal(contents)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ThreatAlertsHandler returns the three most recent alerts
func (a Awareness) ThreatAlertsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := int64(3)
	alerts, err := a.TDB.Find(context.Background(), bson.M{},
		&options.FindOptions{Limit: &limit, Sort: bson.M{"createdAt": -1}})
	if err != nil {
		config.ErrorStatus("failed to get alerts", http.StatusInternalServerError, w, err)
		return
	}
	if len(alerts) == 0 {
		alerts = []models.ThreatAlert{}
	}

	b, err := json.Marshal(alerts)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// AwarenessDetailsHandler returns one content item and bumps its view
// counter. A failed counter bump does not fail the read.
func (a Awareness) AwarenessDetailsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	contentID := mux.Vars(r)["content_id"]

	cID, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	content, err := a.DB.FindOne(context.Background(), bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("content not found", http.StatusNotFound, w, err)
		return
	}

	if _, err := a.DB.UpdateOne(context.Background(), bson.M{"_id": cID},
		bson.M{"$inc": bson.M{"views": 1}}); err != nil {
		zap.S().Warnw("failed to increment view counter",
			"content", contentID,
			"error", err)
	}

	b, err := json.Marshal(content)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateAwarenessHandler inserts a content item with zeroed counters
func (a Awareness) CreateAwarenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var content models.AwarenessContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	content.ID = primitive.NewObjectID()
	content.Views = 0
	content.Downloads = 0
	content.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := a.DB.InsertOne(context.Background(), content); err != nil {
		config.ErrorStatus("failed to add content", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.Response{
		Success: true,
		Data:    map[string]string{"insertedId": content.ID.Hex()},
	})
}
