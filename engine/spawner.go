package engine

import (
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// Spawner draws upcoming tiers uniformly from [0, maxUnlocked]
// Same seed yields the same sequence for the same ceilings
type Spawner struct {
	rng *vmath.FastRand
}

func NewSpawner(seed uint64) *Spawner {
	return &Spawner{rng: vmath.NewFastRand(seed)}
}

// Next returns a tier in [0, maxUnlocked]
func (s *Spawner) Next(maxUnlocked int) int {
	if maxUnlocked < 0 {
		maxUnlocked = 0
	}
	return s.rng.Intn(maxUnlocked + 1)
}

// Pop removes the queue front, shifts the rest forward and refills the tail
func (s *Spawner) Pop(queue *[parameter.QueueLength]int, maxUnlocked int) int {
	front := queue[0]
	copy(queue[:], queue[1:])
	queue[parameter.QueueLength-1] = s.Next(maxUnlocked)
	return front
}
