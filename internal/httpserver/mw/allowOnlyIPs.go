package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/utils"
)

// AllowOnlyCIDRS rejects clients whose address is outside allowed. The
// address is always the socket peer; forwarding headers are ignored since
// the API listens on loopback. An empty list disables the filter.
func AllowOnlyCIDRS(allowed []string, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Warn("no allowed CIDRs configured, api reachable from any client")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r)
			if !m.Allow(ip) {
				log.Warn("rejected client outside allowed CIDRs",
					logger.String("ip", ip),
					logger.String("path", r.URL.Path))
				writeForbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
