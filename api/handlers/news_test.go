package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rcpp-platform/rcpp-api/api/handlers"
	"github.com/rcpp-platform/rcpp-api/databases"
	"github.com/rcpp-platform/rcpp-api/databases/mocks"
	"github.com/rcpp-platform/rcpp-api/models"
)

func TestNews_NewsListHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/news", nil)
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
		arg := args.Get(0).(*[]models.NewsItem)
		*arg = append(*arg, models.NewsItem{Title: "New patrol schedule announced"})
	})
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursorHelper, nil)
	db.(*MockDatabaseHelper).On("Collection", "news").Return(conn)

	n := handlers.News{DB: databases.NewNewsDatabase(db), CDB: databases.NewCommentDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.NewsListHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "New patrol schedule announced")
}

func TestNews_CreateNewsHandlerMissingTitle(t *testing.T) {
	body := bytes.NewBufferString(`{"content": "no title here"}`)
	req, err := http.NewRequest("POST", "/api/news", body)
	if err != nil {
		t.Fatal(err)
	}

	n := handlers.News{DB: databases.NewNewsDatabase(&MockDatabaseHelper{}), CDB: databases.NewCommentDatabase(&MockDatabaseHelper{})}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.CreateNewsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "title is required")
}

func TestNews_CreateNewsHandlerZeroesCounters(t *testing.T) {
	body := bytes.NewBufferString(`{"title": "Safety drive", "views": 500, "likes": 100}`)
	req, err := http.NewRequest("POST", "/api/news", body)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}

	conn.(*mocks.CollectionHelper).On("InsertOne", mock.Anything, mock.Anything).
		Return(&mocks.InsertOneResultHelper{}, nil).
		Run(func(args mock.Arguments) {
			inserted := args.Get(1).(models.NewsItem)
			assert.Equal(t, int32(0), inserted.Views)
			assert.Equal(t, int32(0), inserted.Likes)
			assert.Equal(t, int32(0), inserted.CommentsCount)
		})
	db.(*MockDatabaseHelper).On("Collection", "news").Return(conn)

	n := handlers.News{DB: databases.NewNewsDatabase(db), CDB: databases.NewCommentDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.CreateNewsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "insertedId")
}

func TestNews_PostCommentHandlerBumpsCounter(t *testing.T) {
	newsID := primitive.NewObjectID()
	body := bytes.NewBufferString(`{"newsId": "` + newsID.Hex() + `", "text": "Good initiative"}`)
	req, err := http.NewRequest("POST", "/api/news/post-comment", body)
	if err != nil {
		t.Fatal(err)
	}

	commentConn := &mocks.CollectionHelper{}
	commentConn.On("InsertOne", mock.Anything, mock.Anything).
		Return(&mocks.InsertOneResultHelper{}, nil).
		Run(func(args mock.Arguments) {
			inserted := args.Get(1).(models.Comment)
			assert.Equal(t, newsID, inserted.NewsID)
			assert.Equal(t, "Guest User", inserted.UserName)
			assert.Equal(t, "Good initiative", inserted.Text)
		})

	newsConn := &mocks.CollectionHelper{}
	newsConn.On("UpdateOne", mock.Anything, bson.M{"_id": newsID}, bson.M{"$inc": bson.M{"commentsCount": 1}}).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)

	db := &MockDatabaseHelper{}
	db.On("Collection", "comments").Return(commentConn)
	db.On("Collection", "news").Return(newsConn)

	n := handlers.News{DB: databases.NewNewsDatabase(db), CDB: databases.NewCommentDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(n.PostCommentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "Good initiative")
	newsConn.AssertExpectations(t)
}

func TestNews_LikeNewsHandler(t *testing.T) {
	newsID := primitive.NewObjectID()
	req, err := http.NewRequest("PATCH", "/api/news/like/"+newsID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}

	conn.(*mocks.CollectionHelper).On("UpdateOne", mock.Anything, bson.M{"_id": newsID}, bson.M{"$inc": bson.M{"likes": 1}}).
		Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	db.(*MockDatabaseHelper).On("Collection", "news").Return(conn)

	n := handlers.News{DB: databases.NewNewsDatabase(db), CDB: databases.NewCommentDatabase(db)}

	router := mux.NewRouter()
	router.HandleFunc("/api/news/like/{news_id}", n.LikeNewsHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"modifiedCount":1`)
}

func TestNews_DeleteNewsHandler(t *testing.T) {
	newsID := primitive.NewObjectID()
	req, err := http.NewRequest("DELETE", "/api/news/"+newsID.Hex(), nil)
	if err != nil {
		t.Fatal(err)
	}

	var db databases.DatabaseHelper
	var conn databases.CollectionHelper

	db = &MockDatabaseHelper{}
	conn = &mocks.CollectionHelper{}

	conn.(*mocks.CollectionHelper).On("DeleteOne", mock.Anything, bson.M{"_id": newsID}).Return(int64(1), nil)
	db.(*MockDatabaseHelper).On("Collection", "news").Return(conn)

	n := handlers.News{DB: databases.NewNewsDatabase(db), CDB: databases.NewCommentDatabase(db)}

	router := mux.NewRouter()
	router.HandleFunc("/api/news/{news_id}", n.DeleteNewsHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"deletedCount":1`)
}

func TestNews_CommentsByNewsIDHandlerEmpty(t *testing.T) {
	newsID := primitive.NewObjectID()
	req, err := http.NewRequest("GET", "/api/news/get-comments/"+newsID.Hex(), nil)
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
	conn.(*mocks.CollectionHelper).On("Find", mock.Anything, bson.M{"newsId": newsID}, mock.Anything).Return(cursorHelper, nil)
	db.(*MockDatabaseHelper).On("Collection", "comments").Return(conn)

	n := handlers.News{DB: databases.NewNewsDatabase(db), CDB: databases.NewCommentDatabase(db)}

	router := mux.NewRouter()
	router.HandleFunc("/api/news/get-comments/{news_id}", n.CommentsByNewsIDHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"data":[]`)
}
