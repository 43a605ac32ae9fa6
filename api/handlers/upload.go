package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/rcpp-platform/rcpp-api/config"
)

// allowed evidence file extensions, matched case-insensitively
var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".txt":  true,
}

const maxUploadBytes = 10 << 20 // 10 MiB

// Upload stores evidence files on local disk under a generated name
type Upload struct {
	Dir string
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// UploadFileHandler accepts a single multipart file, checks it against the
// extension allow-list and stores it under a uuid-prefixed name
func (u Upload) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		config.ErrorStatus("no file uploaded", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExtensions[ext] {
		config.ErrorStatus("file type not allowed", http.StatusBadRequest, w, nil)
		return
	}

	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		config.ErrorStatus("failed to prepare upload directory", http.StatusInternalServerError, w, err)
		return
	}

	storedName := fmt.Sprintf("%s-%s", uuid.New().String(), filepath.Base(header.Filename))
	storedPath := filepath.Join(u.Dir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		config.ErrorStatus("failed to store file", http.StatusInternalServerError, w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		config.ErrorStatus("failed to store file", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(uploadResponse{
		Success:  true,
		Filename: storedName,
		Path:     storedPath,
	})
}
