package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(handler gin.HandlerFunc) (*gin.Engine, redismock.ClientMock) {
		rdb, redisMock := redismock.NewClientMock()
		r := gin.New()
		r.POST("/tasks", middleware.Idempotency(rdb, time.Hour), handler)
		return r, redisMock
	}

	t.Run("without key the request passes through", func(t *testing.T) {
		router, redisMock := newRouter(func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"id": "1"})
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replay"))
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("first request caches a successful response", func(t *testing.T) {
		router, redisMock := newRouter(func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"id": "1"})
		})

		cacheKey := "idemp:/tasks::abc-123"
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(cacheKey, `.*`, time.Hour).SetVal("OK")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("replay serves the cached response without the handler", func(t *testing.T) {
		handlerCalls := 0
		router, redisMock := newRouter(func(c *gin.Context) {
			handlerCalls++
			c.JSON(http.StatusCreated, gin.H{"id": "1"})
		})

		cached, _ := json.Marshal(map[string]any{
			"status": http.StatusCreated,
			"body":   []byte(`{"id":"1"}`),
		})
		cacheKey := "idemp:/tasks::abc-123"
		redisMock.ExpectGet(cacheKey).SetVal(string(cached))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replay"))
		assert.JSONEq(t, `{"id":"1"}`, w.Body.String())
		assert.Equal(t, 0, handlerCalls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("failed responses are not cached", func(t *testing.T) {
		router, redisMock := newRouter(func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid"})
		})

		cacheKey := "idemp:/tasks::abc-123"
		redisMock.ExpectGet(cacheKey).RedisNil()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/tasks", nil)
		req.Header.Set("Idempotency-Key", "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
