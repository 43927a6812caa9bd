package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/delcom/fittrack/internal/constants"
	"github.com/delcom/fittrack/internal/database"
	"github.com/delcom/fittrack/internal/middleware"
	"github.com/delcom/fittrack/internal/models"
	"github.com/delcom/fittrack/internal/repository"
	"github.com/delcom/fittrack/internal/response"
	"github.com/delcom/fittrack/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewAuthTokenRepository(db)
	fileStore := services.NewFileStorage(t.TempDir())
	authService := services.NewAuthService(userRepo, tokenRepo, fileStore, "handler-test-secret", time.Hour)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func newAuthRouter(env authTestEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", env.handler.Register)
	r.POST("/api/auth/login", env.handler.Login)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.StatusSuccess, resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	require.NotZero(t, data["id"])
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"name":     "Budi",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, response.StatusFail, decodeEnvelope(t, w).Status)
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	w := postJSON(t, r, "/api/auth/register", map[string]string{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "short",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeEnvelope(t, w).Message, "at least 8 characters")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	payload := map[string]string{
		"name":     "Budi",
		"email":    "budi@example.com",
		"password": "supersecret",
	}
	w := postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "budi@example.com",
		"password": "supersecret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeEnvelope(t, w)
	require.Equal(t, response.StatusSuccess, resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["authToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := newAuthRouter(env)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := postJSON(t, r, "/api/auth/login", map[string]string{
		"email":    "budi@example.com",
		"password": "wrongpass",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, response.StatusFail, decodeEnvelope(t, w).Status)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	_, _, err = env.authService.Login(services.LoginInput{
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.AuthToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestAuthHandler_ReloginInvalidatesOldToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Name:     "Budi",
		Email:    "budi@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.ResolveUser(
		repository.NewUserRepository(env.db),
		repository.NewAuthTokenRepository(env.db),
		"handler-test-secret",
	))
	r.POST("/api/auth/login", env.handler.Login)
	r.GET("/api/users/me", func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		response.Success(c, "ok", gin.H{"id": id})
	})

	login := func() string {
		w := postJSON(t, r, "/api/auth/login", map[string]string{
			"email":    "budi@example.com",
			"password": "supersecret",
		})
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeEnvelope(t, w).Data.(map[string]interface{})
		return data["authToken"].(string)
	}

	first := login()
	second := login()

	me := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusUnauthorized, me(first))
	require.Equal(t, http.StatusOK, me(second))
}

func TestAuthHandler_Logout_Anonymous(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)

	env.handler.Logout(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}
