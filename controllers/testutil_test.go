package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"autogram-api/config"
	"autogram-api/models"
	"autogram-api/routes"
	"autogram-api/services"
)

const testJWTSecret = "test-secret"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Post{},
		&models.Comment{},
		&models.Car{},
		&models.Follow{},
		&models.Reaction{},
		&models.Notification{},
	))
	return db
}

// fakeStorage stands in for the S3 blob store.
type fakeStorage struct {
	mu          sync.Mutex
	deleted     []string
	failResolve bool
	failDelete  bool
}

func (f *fakeStorage) GenerateUploadTarget(ctx context.Context) (*services.UploadTarget, error) {
	imageID := uuid.New().String()
	return &services.UploadTarget{
		UploadURL: "http://storage.test/upload/" + imageID,
		ImageID:   imageID,
	}, nil
}

func (f *fakeStorage) ResolveURL(ctx context.Context, imageID string) (string, error) {
	if f.failResolve {
		return "", errors.New("resolve failed")
	}
	return "http://storage.test/" + imageID, nil
}

func (f *fakeStorage) Delete(ctx context.Context, imageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errors.New("delete failed")
	}
	f.deleted = append(f.deleted, imageID)
	return nil
}

type testEnv struct {
	db      *gorm.DB
	storage *fakeStorage
	router  *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	storage := &fakeStorage{}
	cfg := &config.Config{JWTSecret: testJWTSecret}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg, storage, func() string { return "User_4242" }, zap.NewNop())

	return &testEnv{db: db, storage: storage, router: router}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Provider: "password",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, userID string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		ImageID:   uuid.New().String(),
		Caption:   "test caption",
		Tags:      models.StringSlice{},
		Likes:     models.StringSlice{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"provider": "password",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func tokenWithEmail(t *testing.T, userID, email string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"email":    email,
		"provider": "password",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func fetchPost(t *testing.T, db *gorm.DB, postID string) models.Post {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, "id = ?", postID).Error)
	return post
}

// feedPost mirrors the denormalized feed response shape.
type feedPost struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Caption  string   `json:"caption"`
	Username string   `json:"username"`
	ImageURL string   `json:"image_url"`
	Likes    []string `json:"likes"`
	Tags     []string `json:"tags"`
	Comments []struct {
		ID       string `json:"id"`
		Text     string `json:"text"`
		Username string `json:"username"`
	} `json:"comments"`
}
