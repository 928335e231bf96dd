package controllers

import (
	"net/http"
	"strconv"

	"corpkit/pkg/jsoncodec"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// codecFor picks the codec named by the datePattern query parameter,
// falling back to the configured default. It writes a 400 and reports false
// for an unsupported pattern.
func codecFor(c *gin.Context, codecs *jsoncodec.Registry, defaultPattern string) (*jsoncodec.Codec, bool) {
	pattern := c.Query("datePattern")
	if pattern == "" {
		pattern = defaultPattern
	}

	codec, ok := codecs.Lookup(pattern)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported date pattern", "supported": codecs.Patterns()})
		return nil, false
	}
	return codec, true
}

// render writes v as JSON using the codec's date pattern.
func render(c *gin.Context, logger *zap.Logger, codec *jsoncodec.Codec, status int, v any) {
	text, err := codec.Marshal(v)
	if err != nil {
		logger.Error("failed to render response", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.Data(status, "application/json; charset=utf-8", []byte(text))
}

func getIntWithDefault(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company id"})
		return 0, false
	}
	return id, true
}
