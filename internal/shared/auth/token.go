package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken pulls a bearer token out of the Authorization header,
// returning the empty string when none is present.
func ExtractBearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ExtractBearerTokenFromHeader(r.Header.Get("Authorization"))
}

// ExtractBearerTokenFromHeader strips the "Bearer " prefix (any casing) from an
// Authorization header value.
func ExtractBearerTokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	const prefix = "bearer "
	if strings.HasPrefix(strings.ToLower(header), prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// ExtractToken tries the Authorization header first and falls back to the given
// query parameter (default "token"). Websocket clients in browsers cannot set
// headers, so the query fallback stays supported.
func ExtractToken(r *http.Request, queryParam string) string {
	if token := ExtractBearerToken(r); token != "" {
		return token
	}
	if r == nil || r.URL == nil {
		return ""
	}
	if queryParam == "" {
		queryParam = "token"
	}
	return strings.TrimSpace(r.URL.Query().Get(queryParam))
}
