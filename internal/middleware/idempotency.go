package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency mencegah double-submit POST (misal create task) dengan
// menyimpan response pertama di redis per Idempotency-Key
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)

		ctx := c.Request.Context()
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp cachedResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.Header("X-Idempotency-Replay", "true")
				c.Data(resp.Status, "application/json", resp.Body)
				c.Abort()
				return
			}
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		// Hanya cache hasil sukses agar retry setelah error tetap jalan
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			payload, err := json.Marshal(cachedResponse{
				Status: c.Writer.Status(),
				Body:   recorder.buf.Bytes(),
			})
			if err == nil {
				rdb.Set(ctx, cacheKey, payload, ttl)
			}
		}
	}
}
