package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"go-website-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName is the name of the header that must contain the CSRF token
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// IssueCSRFToken returns the request's CSRF token, generating and setting
// the cookie when none exists yet. Used by the /api/csrf-token endpoint.
func IssueCSRFToken(c *gin.Context) (string, error) {
	// A token minted earlier in the chain takes precedence; the response
	// cookie is not readable from here
	if v, ok := c.Get("CSRFToken"); ok {
		if token, ok := v.(string); ok && token != "" {
			return token, nil
		}
	}
	if token, err := c.Cookie(CSRFTokenCookieName); err == nil && token != "" {
		return token, nil
	}
	token, err := generateCSRFToken()
	if err != nil {
		return "", err
	}
	setCSRFCookie(c, token)
	return token, nil
}

func setCSRFCookie(c *gin.Context, token string) {
	// SameSite=Lax allows the cookie on top-level navigations but not on
	// cross-site subrequests (forms, iframes)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		CSRFTokenCookieName,
		token,
		int(CSRFTokenExpiry.Seconds()),
		"/",
		"",    // Domain (empty = current domain)
		true,  // Secure (HTTPS only)
		false, // HttpOnly = false so JS can read it
	)
}

// CSRFMiddleware implements Double-Submit Cookie pattern for CSRF protection
//
// How it works:
// 1. On any request, if no csrf_token cookie exists, generate one and set it
// 2. For state-changing requests (POST, PUT, DELETE, PATCH), validate that:
//   - The X-CSRF-Token header exists
//   - The header value matches the csrf_token cookie value
//
// EXEMPTIONS:
//   - The public contact form and token/health endpoints skip header
//     validation; they are protected by rate limiting instead. The cookie
//     is still issued so subsequent requests can carry it.
func CSRFMiddleware() gin.HandlerFunc {
	csrfExemptPaths := map[string]bool{
		"/api/contact":    true, // Public contact form (rate limited)
		"/api/csrf-token": true, // Token issuance itself
		"/api/config":     true,
		"/health":         true,
		"/sitemap.xml":    true,
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// Check if path is exempt
		if csrfExemptPaths[path] {
			// Still set the cookie for future requests, but don't validate
			csrfCookie, err := c.Cookie(CSRFTokenCookieName)
			if err != nil || csrfCookie == "" {
				if newToken, err := generateCSRFToken(); err == nil {
					setCSRFCookie(c, newToken)
					c.Set("CSRFToken", newToken)
				}
			} else {
				c.Set("CSRFToken", csrfCookie)
			}
			c.Next()
			return
		}

		// Get or generate CSRF token
		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token")
				c.Abort()
				return
			}
			setCSRFCookie(c, newToken)
			csrfCookie = newToken
		}

		// For safe methods, no validation needed
		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		// For state-changing methods, validate CSRF token
		headerToken := c.GetHeader(CSRFTokenHeaderName)

		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token")
			c.Abort()
			return
		}

		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token")
			c.Abort()
			return
		}

		c.Next()
	}
}
