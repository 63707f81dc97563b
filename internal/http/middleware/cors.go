package middleware

import (
	"net/http"
	"strings"
)

// CORS returns middleware that sets CORS headers for requests coming from one
// of the allowed origins. The special value "*" allows any origin. Preflight
// requests are answered directly with 204.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			wildcard = true
		default:
			origins = append(origins, o)
		}
	}

	originAllowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		for _, o := range origins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case wildcard:
				w.Header().Set("Access-Control-Allow-Origin", "*")
				w.Header().Set("Access-Control-Allow-Credentials", "false")
				setCommonHeaders(w)
			case originAllowed(origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				setCommonHeaders(w)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCommonHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-ID")
	w.Header().Set("Access-Control-Expose-Headers", "Location, X-Request-ID")
	w.Header().Set("Access-Control-Max-Age", "3600")
}
