package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const hotQuestionClicksKey = "hot_questions:clicks"

// HotQuestionRepository 在 Redis 中记录热门问题的点击次数。
type HotQuestionRepository interface {
	IncrementClick(ctx context.Context, questionID string) (int64, error)
	GetClicks(ctx context.Context) (map[string]int64, error)
}

type redisHotQuestionRepository struct {
	redisClient *redis.Client
}

// NewHotQuestionRepository 创建一个新的 HotQuestionRepository 实例。
func NewHotQuestionRepository(redisClient *redis.Client) HotQuestionRepository {
	return &redisHotQuestionRepository{redisClient: redisClient}
}

func (r *redisHotQuestionRepository) IncrementClick(ctx context.Context, questionID string) (int64, error) {
	n, err := r.redisClient.HIncrBy(ctx, hotQuestionClicksKey, questionID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to record click: %w", err)
	}
	return n, nil
}

func (r *redisHotQuestionRepository) GetClicks(ctx context.Context) (map[string]int64, error) {
	raw, err := r.redisClient.HGetAll(ctx, hotQuestionClicksKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get clicks: %w", err)
	}
	clicks := make(map[string]int64, len(raw))
	for id, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		clicks[id] = n
	}
	return clicks, nil
}
