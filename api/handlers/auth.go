package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcpp-platform/rcpp-api/api"
	"github.com/rcpp-platform/rcpp-api/config"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/models"
)

// Auth handles the login and session endpoints
type Auth struct {
	DB           databases.UserDatabase
	Secret       []byte
	AllowedRoles []string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool                 `json:"success"`
	Token   string               `json:"token"`
	User    models.SanitizedUser `json:"user"`
}

// LoginHandler verifies credentials against the directory and issues a signed
// 24h bearer token. Unknown email, bad password and disallowed role fail
// distinguishably (404, 401, 403).
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		config.ErrorStatus("email and password are required", http.StatusBadRequest, w, nil)
		return
	}

	user, err := a.DB.FindOne(context.Background(), bson.M{"email": req.Email})
	if err != nil {
		config.ErrorStatus("user not found", http.StatusNotFound, w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid password", http.StatusUnauthorized, w, err)
		return
	}

	if !a.roleAllowed(user.Role) {
		config.ErrorStatus("access denied", http.StatusForbidden, w, nil)
		return
	}

	token, err := api.IssueToken(a.Secret, user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(loginResponse{Success: true, Token: token, User: user.Sanitize()})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MeHandler resolves the bearer token and returns the bound user with the
// password stripped
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	session, err := api.ResolveSession(r, a.Secret)
	if err != nil {
		config.ErrorStatus("invalid token", http.StatusUnauthorized, w, err)
		return
	}

	uID, err := primitive.ObjectIDFromHex(session.UserID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	user, err := a.DB.FindOne(context.Background(), bson.M{"_id": uID},
		options.FindOne().SetProjection(bson.M{"password": 0}))
	if err != nil {
		config.ErrorStatus("user not found", http.StatusNotFound, w, err)
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

func (a Auth) roleAllowed(role string) bool {
	for _, allowed := range a.AllowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}
