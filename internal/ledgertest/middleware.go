package ledgertest

import (
	"net/http" // HTTP status codes
	"strings"  // Header parsing

	"ewallet/internal/utils" // JWT helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// bearerAuth validates the session token and stores its wallet ID
func (l *Ledger) bearerAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), l.secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set("walletID", claims.WalletID) // Store walletID in context
		c.Next()
	}
}

// ownsWallet reports whether the caller may mutate walletID
func (l *Ledger) ownsWallet(c *gin.Context, walletID int64) bool {
	if !l.requireToken {
		return true
	}
	return c.GetInt64("walletID") == walletID
}

// intercept counts the call, applies gates and queued failures
func (l *Ledger) intercept(call string) gin.HandlerFunc {
	return func(c *gin.Context) {
		l.mu.Lock()
		l.calls[call]++
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			l.idemKeys[call] = append(l.idemKeys[call], key)
		}
		gate := l.gates[call]
		var fail *failure
		if queue := l.failures[call]; len(queue) > 0 {
			fail = &queue[0]
			l.failures[call] = queue[1:]
		}
		l.mu.Unlock()

		if gate != nil {
			select {
			case gate.entered <- struct{}{}:
			default:
			}
			select {
			case <-gate.release:
			case <-c.Request.Context().Done():
				c.Abort()
				return
			}
		}

		if fail == nil {
			c.Next()
			return
		}
		if fail.status == 0 {
			// Drop the connection without a response
			if conn, _, err := c.Writer.Hijack(); err == nil {
				_ = conn.Close()
			}
			c.Abort()
			return
		}
		contentType := "text/plain; charset=utf-8"
		if strings.HasPrefix(strings.TrimSpace(fail.body), "{") {
			contentType = "application/json"
		}
		c.Data(fail.status, contentType, []byte(fail.body))
		c.Abort()
	}
}
