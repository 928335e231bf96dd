package controllers

import (
	"net/http"
	"strconv"

	"corpkit/pkg/ipaddr"

	"github.com/gin-gonic/gin"
)

type IPController struct{}

// Normalize returns the dotted form of an encoded or dotted address
func (ic *IPController) Normalize(c *gin.Context) {
	value := c.Query("value")
	resp := gin.H{"value": value}
	if normalized, ok := ipaddr.Normalize(value); ok {
		resp["normalized"] = normalized
	}
	c.JSON(http.StatusOK, resp)
}

// Encode converts a dotted address to its integer form. strict=true
// rejects anything but four octets in range.
func (ic *IPController) Encode(c *gin.Context) {
	value := c.Query("value")

	if c.Query("strict") == "true" {
		n, err := ipaddr.Parse(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"value": value, "encoded": int64(n)})
		return
	}

	n, ok := ipaddr.Encode(value)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": value, "encoded": n})
}

// Decode converts an integer back to dotted form. Zero has no dotted form.
func (ic *IPController) Decode(c *gin.Context) {
	value := c.Query("value")
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid encoded address"})
		return
	}

	resp := gin.H{"value": n}
	if decoded, ok := ipaddr.Decode(n); ok {
		resp["decoded"] = decoded
	}
	c.JSON(http.StatusOK, resp)
}
