package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcpp-platform/rcpp-api/api/handlers"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/databases/mocks"
	"github.com/rcpp-platform/rcpp-api/models"
)

type MockDatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function.
func (_m *MockDatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if rf, ok := ret.Get(0).(func() databases.ClientHelper); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.ClientHelper)
		}
	}

	return r0
}

// Collection provides a mock function.
func (_m *MockDatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if rf, ok := ret.Get(0).(func(string) databases.CollectionHelper); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.CollectionHelper)
		}
	}

	return r0
}

func TestUser_UserCreateHandlerMissingFields(t *testing.T) {
	body := bytes.NewBufferString(`{"email": "rahim@example.com"}`)
	req, err := http.NewRequest("POST", "/users", body)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{DB: databases.NewUserDatabase(&MockDatabaseHelper{})}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCreateHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "name, email and password are required")
}

func TestUser_UserCreateHandlerDuplicateEmail(t *testing.T) {
	body := bytes.NewBufferString(`{"name": "Rahim", "email": "rahim@example.com", "password": "secret123"}`)
	req, err := http.NewRequest("POST", "/users", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCreateHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "user already exists")
	conn.(*mocks.CollectionHelper).AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestUser_UserCreateHandlerSuccess(t *testing.T) {
	body := bytes.NewBufferString(`{"name": "Rahim", "email": "rahim@example.com", "password": "secret123"}`)
	req, err := http.NewRequest("POST", "/users", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	conn.(*mocks.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).
		Return(&mocks.InsertOneResultHelper{}, nil).
		Run(func(args mock.Arguments) {
			inserted := args.Get(1).(models.User)
			assert.Equal(t, "user", inserted.Role)
			assert.True(t, inserted.EmailVerified)
			assert.NotEqual(t, "secret123", inserted.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("secret123")))
		})
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserCreateHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "user created successfully")
	assert.NotContains(t, rr.Body.String(), "secret123")
}

func TestUser_UserListHandlerPagination(t *testing.T) {
	req, err := http.NewRequest("GET", "/users?page=2&limit=10", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = append(*arg, models.User{Name: "Rahim"}, models.User{Name: "Karim"})
	})
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper, nil)
	conn.(*mocks.CollectionHelper).On("CountDocuments", mock.Anything, mock.Anything).Return(int64(25), nil)
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserListHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.PagedUsersResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Users, 2)
	assert.Equal(t, int64(25), resp.TotalUsers)
	assert.Equal(t, int64(3), resp.TotalPages)
	assert.Equal(t, int64(2), resp.CurrentPage)
}

func TestUser_UserListHandlerEmptyPage(t *testing.T) {
	req, err := http.NewRequest("GET", "/users?page=99", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var cursorHelper databases.CursorHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	cursorHelper = &mocks.CursorHelper{}

	cursorHelper.(*mocks.CursorHelper).On("Decode", mock.Anything).Return(nil)
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper, nil)
	conn.(*mocks.CollectionHelper).On("CountDocuments", mock.Anything, mock.Anything).Return(int64(5), nil)
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	handler := http.HandlerFunc(u.UserListHandler)
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"users":[]`)
}

func TestUser_UserByIDHandlerBadID(t *testing.T) {
	req, err := http.NewRequest("GET", "/users/asdf", nil)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{DB: databases.NewUserDatabase(&MockDatabaseHelper{})}

	router := mux.NewRouter()
	router.HandleFunc("/users/{user_id}", u.UserByIDHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get objectID from Hex")
}

func TestUser_UserByIDHandlerNotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/users/6123456789abcdef01234567", nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	router := mux.NewRouter()
	router.HandleFunc("/users/{user_id}", u.UserByIDHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "failed to get user by ID")
}

func TestUser_UpdateUserByIDHandlerNoFields(t *testing.T) {
	body := bytes.NewBufferString(`{"password": "sneaky"}`)
	req, err := http.NewRequest("PUT", "/users/6123456789abcdef01234567", body)
	if err != nil {
		t.Fatal(err)
	}

	u := handlers.User{DB: databases.NewUserDatabase(&MockDatabaseHelper{})}

	router := mux.NewRouter()
	router.HandleFunc("/users/{user_id}", u.UpdateUserByIDHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "no updatable fields provided")
}

func TestUser_UpdatePasswordHandlerWrongCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewBufferString(`{"currentPassword": "wrong-horse", "newPassword": "battery-staple"}`)
	req, err := http.NewRequest("PATCH", "/users/update-password/6123456789abcdef01234567", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).Password = string(hash)
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	router := mux.NewRouter()
	router.HandleFunc("/users/update-password/{user_id}", u.UpdatePasswordHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "current password is incorrect")
	conn.(*mocks.CollectionHelper).AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestUser_UpdatePasswordHandlerSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}

	body := bytes.NewBufferString(`{"currentPassword": "correct-horse", "newPassword": "battery-staple"}`)
	req, err := http.NewRequest("PATCH", "/users/update-password/6123456789abcdef01234567", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper
	var singleResultHelper databases.SingleResultHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}
	singleResultHelper = &mocks.SingleResultHelper{}

	singleResultHelper.(*mocks.SingleResultHelper).On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.User)
		(*arg).Password = string(hash)
	})
	conn.(*mocks.CollectionHelper).On("FindOne", mock.Anything, mock.Anything).Return(singleResultHelper)
	conn.(*mocks.CollectionHelper).On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	db.(*MockDatabaseHelper).On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	router := mux.NewRouter()
	router.HandleFunc("/users/update-password/{user_id}", u.UpdatePasswordHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "password updated successfully")
}
