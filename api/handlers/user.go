package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// User exported for testing purposes
type User struct {
	DB databases.UserDatabase
}

// UserCreateHandler registers a new directory record. The password is hashed
// before it is stored and never returned.
func (u User) UserCreateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if user.Name == "" || user.Email == "" || user.Password == "" {
		config.ErrorStatus("name, email and password are required", http.StatusBadRequest, w, nil)
		return
	}

	existing, err := u.DB.FindOne(context.Background(), bson.M{"email": user.Email})
	if err == nil && existing != nil {
		config.ErrorStatus("user already exists", http.StatusBadRequest, w, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}
	user.Password = string(hash)
	if user.Role == "" {
		user.Role = "user"
	}
	user.EmailVerified = true
	user.ID = primitive.NewObjectID()
	user.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	if _, err := u.DB.InsertOne(context.Background(), user); err != nil {
		config.ErrorStatus("failed to create user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(models.Response{
		Success: true,
		Message: "user created successfully",
		Data:    map[string]string{"id": user.ID.Hex()},
	})
}

// UserListHandler returns a paginated page of the directory, optionally
// filtered by a case-insensitive substring match on name, email or phone
func (u User) UserListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	page := getPage(r)
	limit := getLimit(r)

	filter := databases.SearchFilter(q, "name", "email", "phone")

	opts := databases.Paginate(page, limit)
	opts.SetProjection(bson.M{"password": 0})
	users, err := u.DB.Find(context.Background(), filter, opts)
	if err != nil {
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}
	if len(users) == 0 {
		users = []models.User{}
	}

	total, err := u.DB.CountDocuments(context.Background(), filter)
	if err != nil {
		config.ErrorStatus("failed to count users", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(models.PagedUsersResponse{
		Users:       users,
		TotalUsers:  total,
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

// UserByIDHandler returns a user by ID with the password stripped
func (u User) UserByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	user, err := u.DB.FindOne(context.Background(), bson.M{"_id": uID},
		options.FindOne().SetProjection(bson.M{"password": 0}))
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(models.Response{Success: true, Data: user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UpdateUserByIDHandler whitelist-updates the mutable directory fields. Email
// uniqueness is not re-validated here, matching the create-time-only check.
func (u User) UpdateUserByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	updateFields := bson.M{}
	for _, field := range []string{"name", "email", "phone", "role", "status", "division", "district", "upazila", "bio", "profileImage"} {
		if v, ok := body[field]; ok {
			updateFields[field] = v
		}
	}
	if len(updateFields) == 0 {
		config.ErrorStatus("no updatable fields provided", http.StatusBadRequest, w, nil)
		return
	}
	updateFields["updatedAt"] = primitive.NewDateTimeFromTime(time.Now())

	err = u.DB.UpdateOne(context.Background(), bson.M{"_id": uID}, bson.M{"$set": updateFields})
	if err != nil {
		config.ErrorStatus("failed to update user", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{Success: true, Message: "user updated successfully"})
}

// UpdatePasswordHandler verifies the current password before hashing and
// storing the new one
func (u User) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]

	uID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		config.ErrorStatus("current and new password are required", http.StatusBadRequest, w, nil)
		return
	}

	user, err := u.DB.FindOne(context.Background(), bson.M{"_id": uID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.CurrentPassword)); err != nil {
		config.ErrorStatus("current password is incorrect", http.StatusUnauthorized, w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	err = u.DB.UpdateOne(context.Background(), bson.M{"_id": uID}, bson.M{"$set": bson.M{
		"password":  string(hash),
		"updatedAt": primitive.NewDateTimeFromTime(time.Now()),
	}})
	if err != nil {
		config.ErrorStatus("failed to update password", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.Response{Success: true, Message: "password updated successfully"})
}

func getPage(r *http.Request) int64 {
	pageParam := r.URL.Query().Get("page")
	if pageParam == "" {
		return 1
	}
	page, err := strconv.ParseInt(pageParam, 10, 64)
	if err != nil {
		zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		return 1
	}
	if page < 1 {
		zap.S().Warnf(fmt.Sprintf("cannot process page number less than 1. Got: %v", page))
		return 1
	}
	return page
}

func getLimit(r *http.Request) int64 {
	limitParam := r.URL.Query().Get("limit")
	if limitParam == "" {
		return databases.DefaultPageSize
	}
	limit, err := strconv.ParseInt(limitParam, 10, 64)
	if err != nil || limit < 1 {
		zap.S().Warnf("limit not set, using default of %v", databases.DefaultPageSize)
		return databases.DefaultPageSize
	}
	return limit
}
