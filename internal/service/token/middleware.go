package token

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AutoRefresh rejects requests without a valid session and silently
// rotates expired access tokens from the refresh cookie.
func (t *TokenService) AutoRefresh(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, _, err := t.CheckCookie(c)
		if err != nil {
			return err
		}

		if newRefresh == "" {
			return next(c)
		}

		t.setSessionCookies(c, newAccess, newRefresh)
		return next(c)
	}
}

// AutoRefreshSeller is AutoRefresh restricted to the seller role.
func (t *TokenService) AutoRefreshSeller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, role, err := t.CheckCookie(c)
		if err != nil {
			return err
		}
		if role != "seller" {
			return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
		}

		if newRefresh != "" {
			t.setSessionCookies(c, newAccess, newRefresh)
		}
		return next(c)
	}
}

func (t *TokenService) setSessionCookies(c echo.Context, access, refresh string) {
	c.SetCookie(SessionCookie("accessToken", access, time.Now().Add(AccessTTL)))
	c.SetCookie(SessionCookie("refreshToken", refresh, time.Now().Add(RefreshTTL)))

	if token, _ := jwt.Parse(access, func(j *jwt.Token) (interface{}, error) { return t.JWTSecret, nil }); token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			setUserContext(c, claims)
		}
	}
}

func SessionCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
