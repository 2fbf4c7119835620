package middleware

import (
	"fmt"
	"math/rand"

	"github.com/gin-gonic/gin"

	"github.com/brewpulse/backend/internal/utils"
)

const RequestIDHeader = "X-Request-Id"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			seed := fmt.Sprintf("%s|%d", c.Request.URL.Path, rand.Int63())
			rid = fmt.Sprintf("req_%012x", utils.HashStringToUint64(seed)&0xffffffffffff)
		}
		c.Set(RequestIDHeader, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}
