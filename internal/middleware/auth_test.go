package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"supplies-service/internal/access"
	"supplies-service/internal/models"
)

const testSecret = "test-secret"

func authRouter(secret string) (*gin.Engine, *access.Identity) {
	gin.SetMode(gin.TestMode)
	var captured access.Identity

	router := gin.New()
	router.Use(Auth(secret))
	router.GET("/probe", func(c *gin.Context) {
		if id, ok := GetIdentity(c); ok {
			captured = id
		}
		c.Status(http.StatusOK)
	})
	return router, &captured
}

func TestAuth_ValidTokenCarriesIdentity(t *testing.T) {
	user := &models.User{
		ID:         uuid.New(),
		Role:       models.RoleManager,
		Department: "Sales",
	}
	token, err := IssueToken(testSecret, user, time.Hour)
	assert.NoError(t, err)

	router, captured := authRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.ID, captured.ID)
	assert.Equal(t, models.RoleManager, captured.Role)
	assert.Equal(t, "Sales", captured.Department)
}

func TestAuth_MissingHeaderRejected(t *testing.T) {
	router, _ := authRouter(testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedTokenRejected(t *testing.T) {
	router, _ := authRouter(testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecretRejected(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleEmployee, Department: "Sales"}
	token, err := IssueToken("other-secret", user, time.Hour)
	assert.NoError(t, err)

	router, _ := authRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredTokenRejected(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: models.RoleEmployee, Department: "Sales"}
	token, err := IssueToken(testSecret, user, -time.Minute)
	assert.NoError(t, err)

	router, _ := authRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
