package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/wave-console/apiclient"
	"github.com/jrsteele09/wave-console/internal/errors"
	"github.com/jrsteele09/wave-console/internal/validation"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// Error codes carried in ?error= on redirects. Only these are ever shown.
const (
	errCodePickers = "pickers"
)

var errorBanners = map[string]string{
	errCodePickers: "Unable to load customers and items. Please try again.",
}

// bannerFromQuery returns the message for a known ?error= code, or "".
func bannerFromQuery(r *http.Request) string {
	return errorBanners[r.URL.Query().Get("error")]
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, code string) {
	fullPath := path + "?error=" + url.QueryEscape(code)

	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", fullPath)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// failure maps an error from validation or the backend to the banner text
// and the status the page is rendered with.
func failure(err error) (string, int) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.First(), http.StatusUnprocessableEntity
	}
	if apiErr, ok := apiclient.AsAPIError(err); ok {
		if apiErr.Status == 0 {
			return apiErr.Message, http.StatusBadGateway
		}
		return apiErr.Message, apiErr.Status
	}
	return "An error occurred", http.StatusInternalServerError
}
