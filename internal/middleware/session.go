package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "halvi-session"
	SessionKey  = "session_id"

	// matches the TTL on stored session state
	sessionMaxAge = 60 * 60 * 24 * 30
)

// SessionStore wraps the cookie store that carries the visitor's session
// ID. Guests and signed-in users alike get one; the cart and preference
// providers key their state by it.
type SessionStore struct {
	cookies *sessions.CookieStore
	secure  bool
}

func NewSessionStore(secretKey string, secure bool) *SessionStore {
	cookies := sessions.NewCookieStore([]byte(secretKey))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionStore{cookies: cookies, secure: secure}
}

// Middleware assigns every visitor a stable session ID.
func (s *SessionStore) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := s.cookies.Get(c.Request, SessionName)
		if err != nil {
			// corrupted or unreadable cookie, start over
			session = sessions.NewSession(s.cookies, SessionName)
			session.Options = s.cookies.Options
		}

		sessionID, ok := session.Values[SessionKey].(string)
		if !ok || sessionID == "" {
			sessionID = generateSessionID()
			session.Values[SessionKey] = sessionID
			session.IsNew = true
		}

		if err := session.Save(c.Request, c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
			c.Abort()
			return
		}

		c.Set("session_id", sessionID)
		c.Set("session", session)

		c.Next()
	}
}

func generateSessionID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand failing is unrecoverable for ID quality
		return hex.EncodeToString([]byte("fallback-session-id"))
	}
	return hex.EncodeToString(bytes)
}

// GetSessionID gets the session ID from gin context
func GetSessionID(c *gin.Context) string {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return ""
	}
	return sessionID.(string)
}

// GetSession gets the session from gin context
func GetSession(c *gin.Context) *sessions.Session {
	session, exists := c.Get("session")
	if !exists {
		return nil
	}
	return session.(*sessions.Session)
}
