package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/dfryer1193/bghfeed/api"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// HandlePanics turns a panicking handler into a 500 response.
func HandlePanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			// Let the server abort the connection as it would without us.
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			err, ok := recovered.(error)
			if !ok {
				err = fmt.Errorf("%v", recovered)
			}

			log.Error().
				Err(err).
				Str("requestID", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(api.Error{Error: err.Error()})
		}()

		next.ServeHTTP(w, r)
	})
}
