package middleware

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/HareemRehan13/EventSphere-Management-System/internal/config"
)

// captureWriter tees the handler's response so a successful body can
// be stored in Redis after it has been sent to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	limit  int
	tooBig bool
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if !w.tooBig {
		if w.buf.Len()+len(b) <= w.limit {
			w.buf.Write(b)
		} else {
			w.tooBig = true
			w.buf.Reset()
		}
	}
	return w.ResponseWriter.Write(b)
}

// NewRedisCache caches successful responses on the configured methods.
// Hits replay status, selected headers and body straight from Redis
// and set X-Cache: HIT; misses run the handler and store the result
// best-effort. Only 2xx responses within the size limit are stored.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}

			key := buildCacheKey(cfg, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				status, headers, body, derr := decodePayload(raw)
				if derr == nil {
					for k, v := range headers {
						c.Response().Header().Set(k, v)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(status, headers["Content-Type"], body)
				}
				// Corrupt entry: drop it and fall through to the handler.
				rdb.Del(ctx, key)
			}

			c.Response().Header().Set("X-Cache", "MISS")
			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				limit:          cfg.MaxBodyBytes,
			}
			c.Response().Writer = cw

			if err := next(c); err != nil {
				return err
			}

			if cw.status >= 200 && cw.status < 300 && !cw.tooBig && cw.buf.Len() > 0 {
				headers := map[string]string{
					"Content-Type": c.Response().Header().Get("Content-Type"),
				}
				if payload, err := encodePayload(cw.status, headers, cw.buf.Bytes()); err == nil {
					rdb.Set(ctx, key, payload, cfg.TTL)
				}
			}
			return nil
		}
	}
}

// Payload layout: [4B status][4B header length][header JSON][body].
func encodePayload(status int, headers map[string]string, body []byte) ([]byte, error) {
	hdr, err := json.Marshal(headers)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 8+len(hdr)+len(body))
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(status))
	out = append(out, u32[:]...)
	binary.BigEndian.PutUint32(u32[:], uint32(len(hdr)))
	out = append(out, u32[:]...)
	out = append(out, hdr...)
	out = append(out, body...)
	return out, nil
}

func decodePayload(raw []byte) (int, map[string]string, []byte, error) {
	if len(raw) < 8 {
		return 0, nil, nil, errTruncatedPayload
	}
	status := int(binary.BigEndian.Uint32(raw[0:4]))
	hdrLen := int(binary.BigEndian.Uint32(raw[4:8]))
	if len(raw) < 8+hdrLen {
		return 0, nil, nil, errTruncatedPayload
	}
	headers := map[string]string{}
	if err := json.Unmarshal(raw[8:8+hdrLen], &headers); err != nil {
		return 0, nil, nil, err
	}
	return status, headers, raw[8+hdrLen:], nil
}

var errTruncatedPayload = errors.New("truncated cache payload")

func buildCacheKey(cfg config.CacheConfig, c echo.Context) string {
	parts := []string{cfg.Prefix, c.Request().Method, c.Request().URL.Path}
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		// path only
	default: // "route_query"
		if q := c.Request().URL.RawQuery; q != "" {
			parts = append(parts, q)
		}
	}
	return strings.Join(parts, ":")
}
