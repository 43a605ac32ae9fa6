package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcpp-platform/rcpp-api/api/handlers"
)

func multipartBody(t *testing.T, fieldName, fileName, contents string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func TestUpload_UploadFileHandlerStoresFile(t *testing.T) {
	dir := t.TempDir()
	body, contentType := multipartBody(t, "file", "evidence.txt", "seen near the market at 9pm")

	req, err := http.NewRequest("POST", "/upload", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	u := handlers.Upload{Dir: dir}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UploadFileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Success  bool   `json:"success"`
		Filename string `json:"filename"`
		Path     string `json:"path"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Filename, "evidence.txt")
	assert.NotEqual(t, "evidence.txt", resp.Filename)

	stored, err := os.ReadFile(filepath.Join(dir, resp.Filename))
	assert.NoError(t, err)
	assert.Equal(t, "seen near the market at 9pm", string(stored))
}

func TestUpload_UploadFileHandlerRejectsDisallowedExtension(t *testing.T) {
	dir := t.TempDir()
	body, contentType := multipartBody(t, "file", "malware.exe", "MZ")

	req, err := http.NewRequest("POST", "/upload", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	u := handlers.Upload{Dir: dir}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UploadFileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "file type not allowed")

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUpload_UploadFileHandlerUppercaseExtensionAllowed(t *testing.T) {
	dir := t.TempDir()
	body, contentType := multipartBody(t, "file", "PHOTO.JPG", "fake-jpeg-bytes")

	req, err := http.NewRequest("POST", "/upload", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", contentType)

	u := handlers.Upload{Dir: dir}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UploadFileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpload_UploadFileHandlerMissingFile(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	assert.NoError(t, writer.WriteField("note", "no file attached"))
	assert.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", "/upload", body)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	u := handlers.Upload{Dir: t.TempDir()}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UploadFileHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no file uploaded")
}
