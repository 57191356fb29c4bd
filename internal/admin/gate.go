// Package admin implements the step-up authentication gate protecting
// mutating catalog operations. A single shared password grants a
// time-boxed elevation, carried as an HS256-signed cookie; expiry is
// evaluated lazily on the next gated request, never by a background
// timer.
package admin

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"catalog-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "catalog_admin"

type Gate struct {
	secret       []byte
	passwordHash string
	ttl          time.Duration
	cookieName   string
}

func NewGate(cfg *config.Config) *Gate {
	return &Gate{
		secret:       []byte(cfg.SessionSecret),
		passwordHash: cfg.AdminPasswordHash,
		ttl:          cfg.AdminTTL,
		cookieName:   CookieName,
	}
}

type elevationClaims struct {
	jwt.RegisteredClaims
}

// grant issues a fresh elevation token stamped with the current time.
func (g *Gate) grant(now time.Time) (string, error) {
	claims := &elevationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "admin",
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// remaining reports how much of the elevation window is left for the
// given token at time now. A zero or negative TTL disables expiry and
// reports the full window as always remaining.
func (g *Gate) remaining(tokenStr string, now time.Time) (time.Duration, bool) {
	if tokenStr == "" {
		return 0, false
	}

	token, err := jwt.ParseWithClaims(tokenStr, &elevationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return g.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(*elevationClaims)
	if !ok || claims.IssuedAt == nil {
		return 0, false
	}

	if g.ttl <= 0 {
		return 0, true
	}

	left := g.ttl - now.Sub(claims.IssuedAt.Time)
	if left < 0 {
		return 0, false
	}
	return left, true
}

// Elevated reports whether the request carries a valid, unexpired
// elevation cookie.
func (g *Gate) Elevated(c *fiber.Ctx) bool {
	_, ok := g.remaining(c.Cookies(g.cookieName), time.Now())
	return ok
}

// Remaining reports the unexpired portion of the elevation window for
// the request, for UIs that show a countdown.
func (g *Gate) Remaining(c *fiber.Ctx) (time.Duration, bool) {
	return g.remaining(c.Cookies(g.cookieName), time.Now())
}

// SafeReturnTarget accepts a caller-supplied redirect target only if it
// is a same-origin relative path. Anything carrying a scheme, a host, or
// a protocol-relative prefix falls back to the derived default, closing
// the open-redirect hole.
func SafeReturnTarget(target, fallback string) string {
	if target == "" {
		return fallback
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	// Browsers treat backslashes in the authority position like slashes.
	if strings.Contains(target, "\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}
