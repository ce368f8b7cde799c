package shared

import (
	"net/http"
	"net/url"
)

// FlashCookieName is the one-shot cookie carrying a message to the next page.
const FlashCookieName = "taskdeck_flash"

// SetFlash queues message for display on the next rendered page.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes returns any queued flash message and clears the cookie.
func PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil || message == "" {
		return nil
	}
	return []string{message}
}
