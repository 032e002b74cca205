package service

import (
	"context"
	"math/rand"

	"github.com/rocketscienceinc/seabattle/internal/entity"
)

const BotName = "AI"

// BotActor targets uniformly at random over the whole board, already shot cells included.
type BotActor struct {
	rng  *rand.Rand
	size int
}

func NewBotActor(rng *rand.Rand, size int) *BotActor {
	return &BotActor{
		rng:  rng,
		size: size,
	}
}

func (that *BotActor) Name() string {
	return BotName
}

func (that *BotActor) SelectTarget(_ context.Context) (entity.Coordinate, error) {
	row := 1 + that.rng.Intn(that.size)
	col := 1 + that.rng.Intn(that.size)

	return entity.NewCoordinate(row, col), nil
}
