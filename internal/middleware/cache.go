package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CacheConfig represents cache control configuration
type CacheConfig struct {
	MaxAge  int
	Private bool
	NoStore bool
	Vary    []string
}

// PublicCacheConfig suits static catalogue responses.
func PublicCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge: 3600,
		Vary:   []string{"Accept"},
	}
}

// NoStoreConfig is for patient data and per-client state.
func NoStoreConfig() CacheConfig {
	return CacheConfig{NoStore: true}
}

// Cache adds cache control headers to responses
func Cache(config CacheConfig) gin.HandlerFunc {
	directives := []string{}
	switch {
	case config.NoStore:
		directives = append(directives, "no-store")
	case config.Private:
		directives = append(directives, "private")
	default:
		directives = append(directives, "public")
	}
	if !config.NoStore && config.MaxAge > 0 {
		directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	}
	value := strings.Join(directives, ", ")
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Header("Cache-Control", "no-store")
		} else {
			c.Header("Cache-Control", value)
			if vary != "" {
				c.Header("Vary", vary)
			}
		}
		c.Next()
	}
}
