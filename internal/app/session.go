package app

import "net/http"

type sessionKey string

const (
	SessionKeyGuest = sessionKey("guest")
)

func (s sessionKey) String() string {
	return string(s)
}

// buyerToken identifies the caller for hold ownership. Guests get a session
// on their first request, so the token is always present here.
func (app *application) buyerToken(r *http.Request) string {
	return app.sessionManager.Token(r.Context())
}
