package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/rcpp-platform/rcpp-api/models"
)

// DefaultAllowedRoles is the dashboard access list applied when ALLOWED_ROLES
// is not set. Dropping "user" from the env value reproduces the stricter
// admin-only policy.
var DefaultAllowedRoles = []string{"Super Admin", "Admin", "District Admin", "Sub-District Admin", "user"}

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	TokenSecret  string
	AllowedRoles []string
	SupportEmail string
	EmailFrom    string
	UploadDir    string
}

// New sets up the logger and reads all config values from the environment
func New() *Config {

	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	allowedRoles := DefaultAllowedRoles
	if v := os.Getenv("ALLOWED_ROLES"); v != "" {
		allowedRoles = nil
		for _, role := range strings.Split(v, ",") {
			if role = strings.TrimSpace(role); role != "" {
				allowedRoles = append(allowedRoles, role)
			}
		}
	}

	supportEmail := os.Getenv("SUPPORT_EMAIL")
	if supportEmail == "" {
		supportEmail = "support@rcpp.gov.bd"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),
		TokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		AllowedRoles: allowedRoles,
		SupportEmail: supportEmail,
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		UploadDir:    uploadDir,
	}
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errMsg}})
	w.Write(b)
}
