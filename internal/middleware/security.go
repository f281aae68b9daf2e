package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders middleware adds security headers for production
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		isHTTPS := isSecureRequest(c)

		if isHTTPS {
			// HSTS only for HTTPS
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		}

		// Prevent MIME type sniffing
		c.Header("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		c.Header("X-Frame-Options", "DENY")

		// XSS Protection
		c.Header("X-XSS-Protection", "1; mode=block")

		// Referrer Policy
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// The app itself asks for geolocation; keep it allowed for self
		c.Header("Permissions-Policy", "geolocation=(self), microphone=(), camera=()")

		c.Header("Content-Security-Policy", buildCSP(isHTTPS))

		// Remove server information
		c.Header("Server", "")

		c.Next()
	}
}

// isSecureRequest checks if the request is HTTPS (considering proxy headers)
func isSecureRequest(c *gin.Context) bool {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto == "https" {
		return true
	}
	if c.Request.TLS != nil {
		return true
	}
	if ssl := c.GetHeader("X-Forwarded-SSL"); ssl == "on" {
		return true
	}
	return false
}

// buildCSP builds Content Security Policy based on environment
func buildCSP(isHTTPS bool) string {
	protocol := "http:"
	if isHTTPS {
		protocol = "https:"
	}

	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: " + protocol,
		"font-src 'self' data:",
		"connect-src 'self' " + protocol,
		"media-src 'self'",
		"object-src 'none'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")
}
