package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// Stats serves the admin dashboard aggregates
type Stats struct {
	DB databases.IncidentDatabase
}

// AdminStatsHandler returns the headline counts and the distribution of
// reports grouped by incident type
func (s Stats) AdminStatsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	summary := models.AdminStatsSummary{}
	counts := []struct {
		filter bson.M
		dest   *int64
	}{
		{bson.M{}, &summary.TotalReports},
		{bson.M{"status": models.StatusPending}, &summary.PendingReview},
		{bson.M{"status": models.StatusResolved}, &summary.CasesResolved},
		{bson.M{"status": models.StatusRejected}, &summary.RejectedCases},
		{bson.M{"urgency": "high"}, &summary.CriticalThreats},
	}
	for _, count := range counts {
		total, err := s.DB.CountDocuments(context.Background(), count.filter)
		if err != nil {
			config.ErrorStatus("failed to count reports", http.StatusInternalServerError, w, err)
			return
		}
		*count.dest = total
	}

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$incidentType", "value": bson.M{"$sum": 1}}},
		{"$project": bson.M{"name": "$_id", "value": 1, "_id": 0}},
	}
	cur, err := s.DB.Aggregate(context.Background(), pipeline)
	if err != nil {
		config.ErrorStatus("failed to aggregate incident types", http.StatusInternalServerError, w, err)
		return
	}
	var distribution []models.IncidentTypeCount
	if err := cur.Decode(&distribution); err != nil {
		config.ErrorStatus("failed to decode incident type distribution", http.StatusInternalServerError, w, err)
		return
	}
	if len(distribution) == 0 {
		distribution = []models.IncidentTypeCount{}
	}

	b, err := json.Marshal(models.AdminStatsResponse{
		Success:      true,
		Summary:      summary,
		Distribution: distribution,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
