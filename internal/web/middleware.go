package web

import (
	"log/slog"
	"net/http"

	"github.com/erazemk/bamboorat/internal/auth"
)

// CookieName is the cookie holding the identity token.
const CookieName = "token"

// AnonymousAuth reads the identity token from the cookie and signs in
// anonymously when it is missing or invalid. The identity is added to the
// request context.
func AnonymousAuth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(CookieName); err == nil {
				token = cookie.Value
			}

			id, newToken, err := svc.EnsureAuthenticated(token)
			if err != nil {
				slog.Error("failed to sign in anonymously", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if newToken != "" {
				setAuthCookie(w, newToken)
				slog.Info("anonymous identity issued", "uid", id.UID)
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

// setAuthCookie stores the identity token with consistent attributes.
func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.TokenExpiry.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
