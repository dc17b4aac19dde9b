package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tcgladder/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	eloUpdatesChannel = "elo_updates"
	cacheOpTimeout    = 2 * time.Second
)

// LeaderboardCache mirrors per-track ratings into Redis sorted sets so
// leaderboard reads can skip the database, and publishes rating changes to
// the elo_updates channel for live consumers. Redis is a cache, not the
// source of truth: every method degrades to a logged warning on failure.
type LeaderboardCache struct {
	rdb        *redis.Client
	logger     *zap.Logger
	instanceID string
}

func NewLeaderboardCache(redisAddr string, logger *zap.Logger) *LeaderboardCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	return &LeaderboardCache{
		rdb:        rdb,
		logger:     logger,
		instanceID: uuid.New().String()[:8], // Short instance ID for logging
	}
}

func trackKey(track string) string {
	return "leaderboard:" + track
}

func memberFor(userID uint, username string) string {
	return fmt.Sprintf("%d:%s", userID, username)
}

// SetUserScores writes a user's current ratings into both track sets.
func (c *LeaderboardCache) SetUserScores(userID uint, username string, lifetime, seasonal float64) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	member := memberFor(userID, username)
	pipe := c.rdb.Pipeline()
	pipe.ZAdd(ctx, trackKey(models.TrackLifetime), redis.Z{Score: lifetime, Member: member})
	pipe.ZAdd(ctx, trackKey(models.TrackSeasonal), redis.Z{Score: seasonal, Member: member})
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("failed to update leaderboard cache",
			zap.Uint("userId", userID), zap.Error(err))
	}
}

// ClearTrack drops a whole track's sorted set, used on season rollover.
func (c *LeaderboardCache) ClearTrack(track string) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := c.rdb.Del(ctx, trackKey(track)).Err(); err != nil {
		c.logger.Warn("failed to clear leaderboard cache",
			zap.String("track", track), zap.Error(err))
	}
}

// PublishEloUpdate broadcasts a rating change to subscribers.
func (c *LeaderboardCache) PublishEloUpdate(update models.EloUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	payload, err := json.Marshal(update)
	if err != nil {
		c.logger.Warn("failed to marshal elo update", zap.Error(err))
		return
	}
	if err := c.rdb.Publish(ctx, eloUpdatesChannel, payload).Err(); err != nil {
		c.logger.Warn("failed to publish elo update",
			zap.String("instance", c.instanceID), zap.Error(err))
	}
}

// TopN reads the highest-rated members of a track, best first. Returns
// redis.Nil-free empty results when the set is missing.
func (c *LeaderboardCache) TopN(ctx context.Context, track string, n int64) ([]redis.Z, error) {
	return c.rdb.ZRevRangeWithScores(ctx, trackKey(track), 0, n-1).Result()
}

func (c *LeaderboardCache) Close() error {
	return c.rdb.Close()
}
