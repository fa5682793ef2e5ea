package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amarkules1/football-stats-tracker/internal/nfl"
)

const extractionStream = "extractions.completed.nfl"

// RedisPublisher publishes completed extractions to a Redis stream so other
// consumers (dashboards, archival jobs) can react without polling the API.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishExtraction appends a completed extraction to the stream.
func (rp *RedisPublisher) PublishExtraction(ctx context.Context, game *nfl.GameData) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: extractionStream,
		Values: map[string]interface{}{
			"id":        game.ID,
			"season":    game.Season,
			"week":      game.Week,
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
