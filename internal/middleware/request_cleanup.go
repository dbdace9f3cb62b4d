package middleware

import (
	"io"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// maxDrainBytes bounds how much of an unread body is discarded so the
// connection can be reused; larger leftovers just close the body.
const maxDrainBytes = 256 << 10

// DrainAndCloseRequest discards what handlers left unread and closes the request body.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			if _, err := io.CopyN(io.Discard, r.Body, maxDrainBytes); err != nil && err != io.EOF {
				log.Tracef("drain request body [%s]: %s", r.URL.Path, err)
			}
			if err := r.Body.Close(); err != nil {
				log.Tracef("close request body [%s]: %s", r.URL.Path, err)
			}
		})
	}
}
