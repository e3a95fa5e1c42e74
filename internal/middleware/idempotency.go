package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
)

// storedReply is the cached outcome of an idempotent request.
type storedReply struct {
	StatusCode  int             `json:"status_code"`
	ContentType string          `json:"content_type"`
	Body        json.RawMessage `json:"body"`
}

// replyRecorder captures the response body while it streams to the client.
type replyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *replyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response for a repeated Idempotency-Key, so
// a retried submit cannot create a second booking. Requests without the
// header, and non-mutating methods, pass straight through; a Redis outage
// just disables the replay.
func Idempotency(client *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := "idempotency:" + key

		if reply := loadReply(ctx, client, cacheKey); reply != nil {
			c.Data(reply.StatusCode, reply.ContentType, reply.Body)
			c.Abort()
			return
		}

		recorder := &replyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = recorder

		c.Next()

		// 5xx responses are retryable; only settled outcomes are stored.
		if status := c.Writer.Status(); status >= 200 && status < 500 {
			storeReply(ctx, client, cacheKey, &storedReply{
				StatusCode:  status,
				ContentType: c.Writer.Header().Get("Content-Type"),
				Body:        recorder.body.Bytes(),
			})
		}
	}
}

// loadReply fetches a stored reply; nil means no usable entry.
func loadReply(ctx context.Context, client *redis.Client, key string) *storedReply {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var reply storedReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil
	}
	return &reply
}

// storeReply persists a reply for the idempotency window, best effort.
func storeReply(ctx context.Context, client *redis.Client, key string, reply *storedReply) {
	data, err := json.Marshal(reply)
	if err != nil {
		return
	}
	_ = client.Set(ctx, key, data, idempotencyTTL).Err()
}
