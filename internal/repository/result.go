package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/seabattle/internal/entity"
)

var ErrResultNotFound = errors.New("match result not found")

const winsKey = "results:wins"

type ResultRepository interface {
	CreateOrUpdate(ctx context.Context, result *entity.MatchResult) error
	GetByID(ctx context.Context, id string) (*entity.MatchResult, error)
	DeleteByID(ctx context.Context, id string) error
	Tally(ctx context.Context) (map[string]int64, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// CreateOrUpdate stores the result and counts the win the first time the result is seen.
func (that *dbResult) CreateOrUpdate(ctx context.Context, result *entity.MatchResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	resultKey := "result:" + result.ID

	previous, err := that.client.SetArgs(ctx, resultKey, resultJSON, redis.SetArgs{Get: true}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to set result: %w", err)
	}

	if previous != "" || result.Winner == "" {
		return nil
	}

	if err = that.client.HIncrBy(ctx, winsKey, result.Winner, 1).Err(); err != nil {
		return fmt.Errorf("failed to count win: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.MatchResult, error) {
	resultKey := "result:" + id

	response, err := that.client.Get(ctx, resultKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var existingResult entity.MatchResult
	if err = json.Unmarshal([]byte(response), &existingResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &existingResult, nil
}

func (that *dbResult) DeleteByID(ctx context.Context, id string) error {
	resultKey := "result:" + id

	deleted, err := that.client.Del(ctx, resultKey).Result()
	if err != nil {
		return fmt.Errorf("failed to delete result by id: %w", err)
	}

	if deleted == 0 {
		return ErrResultNotFound
	}

	return nil
}

// Tally returns the number of wins per side.
func (that *dbResult) Tally(ctx context.Context) (map[string]int64, error) {
	counters, err := that.client.HGetAll(ctx, winsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tally: %w", err)
	}

	tally := make(map[string]int64, len(counters))
	for winner, raw := range counters {
		count, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid win counter for %s: %w", winner, err)
		}
		tally[winner] = count
	}

	return tally, nil
}
