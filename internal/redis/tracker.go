// Player tracking implementation
//
// Redis-based player tracking:
// - Activity recording
// - Session tracking
// - Analytics support
// - Efficient data structures

package redis

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/streamforge/hlsplaylist/internal/config"
	"github.com/streamforge/hlsplaylist/internal/telemetry"
)

const (
	activeSetKey  = "hlsplaylist:players:active" // ZSET: playerID -> last activity unix time
	playerKeyBase = "hlsplaylist:players:info:"  // HASH per player, expires after trackExpiry
)

// Tracker records player activity in Redis: a sorted set keyed by last
// activity time (so GetActivePlayers is a ZCOUNT range query) plus a hash
// per player holding the fields a caller might want back out.
type Tracker struct {
	client      *goredis.Client
	logger      telemetry.Logger
	trackExpiry time.Duration
}

// PlayerInfo represents player tracking information
type PlayerInfo struct {
	PlayerID      string
	LastActivity  time.Time
	Path          string
	UserAgent     string
	FirstSeen     time.Time
	ActivityCount int
}

// NewTracker creates a new Redis-backed player tracker.
func NewTracker(client *goredis.Client, cfg *config.RedisConfig, logger telemetry.Logger) *Tracker {
	return &Tracker{
		client:      client,
		logger:      logger,
		trackExpiry: cfg.TrackingExpiry,
	}
}

func playerKey(playerID string) string {
	return playerKeyBase + playerID
}

// TrackPlayer records activity for playerID, creating it on first sight.
// The per-player hash expires after trackExpiry of inactivity; the
// sorted-set entry does not expire on its own and is pruned by the worker
// started with StartCleanupWorker.
func (t *Tracker) TrackPlayer(playerID, path, userAgent string) {
	ctx := context.Background()
	now := time.Now()
	key := playerKey(playerID)

	exists, err := t.client.Exists(ctx, key).Result()
	if err != nil {
		t.logger.Warn("tracker: redis exists failed", "player_id", playerID, "error", err)
		return
	}

	pipe := t.client.TxPipeline()
	if exists == 0 {
		pipe.HSet(ctx, key, map[string]interface{}{
			"player_id":      playerID,
			"path":           path,
			"user_agent":     userAgent,
			"first_seen":     now.Unix(),
			"last_activity":  now.Unix(),
			"activity_count": 1,
		})
	} else {
		pipe.HSet(ctx, key, map[string]interface{}{
			"path":          path,
			"last_activity": now.Unix(),
		})
		pipe.HIncrBy(ctx, key, "activity_count", 1)
	}
	pipe.Expire(ctx, key, t.trackExpiry)
	pipe.ZAdd(ctx, activeSetKey, goredis.Z{Score: float64(now.Unix()), Member: playerID})

	if _, err := pipe.Exec(ctx); err != nil {
		t.logger.Warn("tracker: redis pipeline failed", "player_id", playerID, "error", err)
	}
}

// GetActivePlayers returns the count of players whose last activity falls
// within trackExpiry, via a ZCOUNT range rather than scanning every member.
func (t *Tracker) GetActivePlayers() int {
	ctx := context.Background()
	cutoff := time.Now().Add(-t.trackExpiry).Unix()

	count, err := t.client.ZCount(ctx, activeSetKey, strconv.FormatInt(cutoff, 10), "+inf").Result()
	if err != nil {
		t.logger.Warn("tracker: redis zcount failed", "error", err)
		return 0
	}
	return int(count)
}

// GetPlayerInfo returns information about a player, or nil if unknown or
// expired.
func (t *Tracker) GetPlayerInfo(playerID string) *PlayerInfo {
	ctx := context.Background()
	fields, err := t.client.HGetAll(ctx, playerKey(playerID)).Result()
	if err != nil || len(fields) == 0 {
		return nil
	}

	firstSeen, _ := strconv.ParseInt(fields["first_seen"], 10, 64)
	lastActivity, _ := strconv.ParseInt(fields["last_activity"], 10, 64)
	activityCount, _ := strconv.Atoi(fields["activity_count"])

	return &PlayerInfo{
		PlayerID:      playerID,
		Path:          fields["path"],
		UserAgent:     fields["user_agent"],
		FirstSeen:     time.Unix(firstSeen, 0),
		LastActivity:  time.Unix(lastActivity, 0),
		ActivityCount: activityCount,
	}
}

// StartCleanupWorker periodically prunes the sorted set of members whose
// per-player hash has already expired (Redis TTL removes the hash but not
// its ZSET entry, since a ZSET member carries no TTL of its own).
func (t *Tracker) StartCleanupWorker(ctx context.Context) {
	ticker := time.NewTicker(t.trackExpiry / 2)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.cleanup(ctx)
			}
		}
	}()
}

func (t *Tracker) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-t.trackExpiry).Unix()
	removed, err := t.client.ZRemRangeByScore(ctx, activeSetKey, "-inf", strconv.FormatInt(cutoff-1, 10)).Result()
	if err != nil {
		t.logger.Warn("tracker: cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		t.logger.Debug("tracker: pruned stale players", "count", removed)
	}
}
