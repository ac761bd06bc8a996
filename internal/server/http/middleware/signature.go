package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SignatureHeader carries hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-Gateway-Signature"

const maxSignedBody = 1 << 20

// GatewaySignature verifies that the body was signed with the shared secret.
// The body is restored for downstream handlers.
func GatewaySignature(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		provided, err := hex.DecodeString(strings.TrimSpace(c.GetHeader(SignatureHeader)))
		if err != nil || len(provided) == 0 {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSignedBody))
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		_ = c.Request.Body.Close()

		if !hmac.Equal(provided, Sign(key, body)) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

// Sign computes HMAC-SHA256 of body.
func Sign(key, body []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(body)
	return mac.Sum(nil)
}
