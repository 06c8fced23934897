package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MiB

var errBodyTooLarge = errors.New("request body exceeds size limit")

// bodyLimitMiddleware buffers request bodies up to limit bytes so oversized
// log uploads are rejected before JSON binding.
func bodyLimitMiddleware(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.Body == nil || c.Request.Method == http.MethodGet {
			c.Next()
			return
		}
		data, err := readRequestBody(c.Request, limit)
		if err != nil {
			status := http.StatusBadRequest
			code := "invalid_request"
			if errors.Is(err, errBodyTooLarge) {
				status = http.StatusRequestEntityTooLarge
				code = "payload_too_large"
			}
			abortWithError(c, NewHTTPError(status, code, err.Error(), err))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(data))
		c.Request.ContentLength = int64(len(data))
		c.Next()
	}
}

func readRequestBody(r *http.Request, limit int64) ([]byte, error) {
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errBodyTooLarge
	}
	return data, nil
}
