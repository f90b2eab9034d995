package mw

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache memoizes GET responses keyed by request URI, so the upstream-backed
// data endpoints answer repeat requests without another fetch. Only
// successful responses are stored. Responses carry a Cache-Control max-age
// matching the server-side TTL so browsers back off for the same window.
func Cache(store *cache.Cache, duration time.Duration) gin.HandlerFunc {
	maxAge := fmt.Sprintf("public, max-age=%d", int(duration.Seconds()))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if resp, found := store.Get(key); found {
			serveCached(c, resp.(cachedResponse))
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw
		c.Header("Cache-Control", maxAge)

		c.Next()

		if blw.Status() >= 200 && blw.Status() < 300 {
			store.Set(key, cachedResponse{
				status:  blw.Status(),
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			}, duration)
		}
	}
}

func serveCached(c *gin.Context, cached cachedResponse) {
	for k, v := range cached.headers {
		c.Writer.Header()[k] = v
	}
	c.Writer.WriteHeader(cached.status)
	c.Writer.Write(cached.body)
	c.Abort()
}
