package utils

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"
)

// SessionHeader is the client-generated session id header stamped onto
// every tracked event.
const SessionHeader = "X-Session-ID"

// GenerateSessionID creates a URL-safe random session id.
func GenerateSessionID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; keep a usable id anyway.
		return "session-" + time.Now().UTC().Format("20060102150405.000")
	}
	return base64.URLEncoding.EncodeToString(b)
}

// SessionID returns the caller's session id, generating one when the client
// did not send the header.
func SessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return GenerateSessionID()
}
