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

	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// News handles the news feed and its comments
type News struct {
	DB  databases.NewsDatabase
	CDB databases.CommentDatabase
}

// NewsListHandler returns all news items, newest first
func (n News) NewsListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	items, err := n.DB.Find(context.Background(), bson.M{}, options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		config.ErrorStatus("failed to get news", http.StatusInternalServerError, w, err)
		return
	}
	if len(items) == 0 {
		items = []models.NewsItem{}
	}

	b, err := json.Marshal(models.Response{Success: true, Data: items})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// NewsByIDHandler returns a single news item
func (n News) NewsByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	newsID := mux.Vars(r)["news_id"]

	nID, err := primitive.ObjectIDFromHex(newsID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	item, err := n.DB.FindOne(context.Background(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("news not found", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(models.Response{Success: true, Data: item})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateNewsHandler inserts a news item with zeroed counters
func (n News) CreateNewsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var item models.NewsItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if item.Title == "" {
		config.ErrorStatus("title is required", http.StatusBadRequest, w, nil)
		return
	}

	item.ID = primitive.NewObjectID()
	if item.Date == 0 {
		item.Date = primitive.NewDateTimeFromTime(time.Now())
	}
	item.Views = 0
	item.Likes = 0
	item.CommentsCount = 0

	if _, err := n.DB.InsertOne(context.Background(), item); err != nil {
		config.ErrorStatus("failed to create news", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.Response{
		Success: true,
		Data:    map[string]string{"insertedId": item.ID.Hex()},
	})
}

// DeleteNewsHandler removes a news item
func (n News) DeleteNewsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	newsID := mux.Vars(r)["news_id"]

	nID, err := primitive.ObjectIDFromHex(newsID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	deleted, err := n.DB.DeleteOne(context.Background(), bson.M{"_id": nID})
	if err != nil {
		config.ErrorStatus("failed to delete news", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{
		Success: true,
		Data:    map[string]int64{"deletedCount": deleted},
	})
}

// PostCommentHandler stores a comment and bumps the news item's counter
func (n News) PostCommentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		NewsID   string `json:"newsId"`
		UserName string `json:"userName"`
		Text     string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	nID, err := primitive.ObjectIDFromHex(body.NewsID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	if body.UserName == "" {
		body.UserName = "Guest User"
	}

	comment := models.Comment{
		ID:       primitive.NewObjectID(),
		NewsID:   nID,
		UserName: body.UserName,
		Text:     body.Text,
		Date:     primitive.NewDateTimeFromTime(time.Now()),
	}

	if _, err := n.CDB.InsertOne(context.Background(), comment); err != nil {
		config.ErrorStatus("failed to post comment", http.StatusInternalServerError, w, err)
		return
	}

	if _, err := n.DB.UpdateOne(context.Background(), bson.M{"_id": nID},
		bson.M{"$inc": bson.M{"commentsCount": 1}}); err != nil {
		config.ErrorStatus("failed to update comment count", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.Response{Success: true, Data: comment})
}

// CommentsByNewsIDHandler returns all comments for a news item, newest first
func (n News) CommentsByNewsIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	newsID := mux.Vars(r)["news_id"]

	nID, err := primitive.ObjectIDFromHex(newsID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	comments, err := n.CDB.Find(context.Background(), bson.M{"newsId": nID},
		options.Find().SetSort(bson.M{"date": -1}))
	if err != nil {
		config.ErrorStatus("failed to get comments", http.StatusInternalServerError, w, err)
		return
	}
	if len(comments) == 0 {
		comments = []models.Comment{}
	}

	b, err := json.Marshal(models.Response{Success: true, Data: comments})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// LikeNewsHandler bumps the like counter on a news item
func (n News) LikeNewsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	newsID := mux.Vars(r)["news_id"]

	nID, err := primitive.ObjectIDFromHex(newsID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	res, err := n.DB.UpdateOne(context.Background(), bson.M{"_id": nID},
		bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		config.ErrorStatus("failed to like news", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{
		Success: true,
		Data:    map[string]int64{"modifiedCount": res.ModifiedCount},
	})
}
