package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/session"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the payload of the anonymous session cookie.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type SessionMiddleware struct {
	manager    *session.Manager
	key        []byte
	cookieName string
	ttl        time.Duration
	secure     bool
}

func NewSessionMiddleware(manager *session.Manager, cfg config.Session) *SessionMiddleware {
	return &SessionMiddleware{
		manager:    manager,
		key:        []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
		secure:     cfg.SecureCookie,
	}
}

// Attach resolves the visitor's session from the signed cookie, starting a
// new one when the cookie is missing, expired or tampered with.
func (m *SessionMiddleware) Attach(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		sessionID := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			id, err := m.ParseToken(cookie.Value)
			if err != nil {
				logger.Warn("Discarding invalid session cookie", slog.String("error", err.Error()))
			} else {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()

			token, err := m.IssueToken(sessionID)
			if err != nil {
				logger.Error("Failed to sign session token", slog.String("error", err.Error()))
				response.Error(w, errors.InternalError("Failed to start session").WithError(err))
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.ttl.Seconds()),
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})

			logger.Info("Session started", slog.String("sessionId", sessionID))
		}

		s := m.manager.Get(sessionID)

		ctx := session.WithSession(r.Context(), s)
		ctx = WithLogger(ctx, logger.With(slog.String("sessionId", sessionID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func (m *SessionMiddleware) IssueToken(sessionID string) (string, error) {
	now := time.Now()

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
}

// ParseToken verifies a session token and returns its session id.
func (m *SessionMiddleware) ParseToken(tokenString string) (string, error) {

	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// check the signing method
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.BadRequestError("unexpected signing method")
		}
		return m.key, nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid || claims.SessionID == "" {
		return "", errors.UnauthorizedError("Invalid session token")
	}

	return claims.SessionID, nil
}
