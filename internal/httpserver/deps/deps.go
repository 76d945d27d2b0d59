package deps

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/ghostdesk/internal/credentials"
	"github.com/MrSnakeDoc/ghostdesk/internal/events"
	"github.com/MrSnakeDoc/ghostdesk/internal/finder"
	"github.com/MrSnakeDoc/ghostdesk/internal/logger"
	"github.com/MrSnakeDoc/ghostdesk/internal/registry"
	"github.com/MrSnakeDoc/ghostdesk/internal/screen"
	redisstore "github.com/MrSnakeDoc/ghostdesk/internal/store/redis"
)

type Deps struct {
	Logger           logger.Logger
	StartTime        time.Time
	Version          string
	Commit           string
	BuildDate        string
	GoVersion        string
	AllowedHosts     []string            // Host headers allowed to access the API
	AllowedCIDRS     []string            // client IPs allowed to access the API
	APIRatePerSecond int                 // state-changing requests per second (0 disables)
	APIBurst         int                 // burst for APIRatePerSecond
	RedisClient      *redis.Client       // shared Redis connection, pinged by readyz
	Store            *redisstore.Store   // blogs and preferences
	Registry         *registry.Registry  // in-memory blogs
	Screen           *screen.Controller  // screen state machine
	Events           *events.Router      // host event routing
	Credentials      *credentials.Store  // keychain
	Finder           *finder.Finder      // find in page
	Gatherer         prometheus.Gatherer // metrics registry served on /metrics
	NameRefresh      chan struct{}       // triggers a manual blog name refresh
}
