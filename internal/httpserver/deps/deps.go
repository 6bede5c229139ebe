package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scribbly/scribbly/internal/identity"
	"github.com/scribbly/scribbly/internal/logger"
	"github.com/scribbly/scribbly/internal/notes"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	RedisClient *redis.Client    // Redis client connection (nil in handler tests)
	Signal      *identity.Signal // active identity, watched by the notes store
	Notes       *notes.Store     // in-memory note cache over the remote store
}
