package middlewarectx

import "net/http"

// allowedHeaders mirrors what the embedded tracking script and browser
// SDKs send on cross-origin calls.
const allowedHeaders = "authorization, x-client-info, apikey, content-type"

// CORSMiddleware applies a permissive cross-origin policy. The API is
// called from arbitrary customer sites, so any origin is allowed.
// Preflight OPTIONS requests are answered immediately with an empty
// 200 response.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
