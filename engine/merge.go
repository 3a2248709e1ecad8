package engine

import (
	"slices"

	"github.com/lixenwraith/fruit-drop/catalog"
	"github.com/lixenwraith/fruit-drop/core"
	"github.com/lixenwraith/fruit-drop/parameter"
	"github.com/lixenwraith/fruit-drop/physics"
	"github.com/lixenwraith/fruit-drop/vmath"
)

// MergeEligible reports whether a and b fuse: same tier, both older than the minimum age, touching
func MergeEligible(a, b *core.Token) bool {
	return a.Tier == b.Tier &&
		a.Age > parameter.MergeMinAge &&
		b.Age > parameter.MergeMinAge &&
		physics.Overlapping(a, b)
}

// FindMerge returns the first eligible pair in ascending (i, j) order
func FindMerge(tokens []*core.Token) (i, j int, ok bool) {
	for i = 0; i < len(tokens); i++ {
		for j = i + 1; j < len(tokens); j++ {
			if MergeEligible(tokens[i], tokens[j]) {
				return i, j, true
			}
		}
	}
	return -1, -1, false
}

// MergeResult describes one committed merge
type MergeResult struct {
	SourceTier int
	ResultTier int
	// Consumed is true when a max-tier pair vanished without a replacement
	Consumed bool
	Pos      vmath.Vec2
	Points   int
	Token    *core.Token // nil when Consumed
	Unlocked bool
}

// ApplyMerge removes the pair at i<j and appends the next-tier token at their midpoint
// Remaining tokens keep their relative order
func (gs *GameState) ApplyMerge(cat *catalog.Catalog, i, j int) MergeResult {
	a, b := gs.Tokens[i], gs.Tokens[j]
	res := MergeResult{
		SourceTier: a.Tier,
		ResultTier: a.Tier,
		Pos:        vmath.Midpoint(a.Pos, b.Pos),
	}
	vel := a.Vel.Add(b.Vel).Scale(parameter.MergeMomentumShare)

	// Higher index first so i stays valid
	gs.Tokens = slices.Delete(gs.Tokens, j, j+1)
	gs.Tokens = slices.Delete(gs.Tokens, i, i+1)
	gs.Merges++

	if a.Tier < cat.MaxTier() {
		res.ResultTier = a.Tier + 1
		res.Token = gs.Spawn(cat, res.ResultTier, res.Pos, vel)
	} else {
		res.Consumed = true
	}

	// Max-tier pairs still score at their own tier
	res.Points = cat.Points(res.ResultTier) * parameter.MergeScoreMultiplier
	gs.Score += res.Points

	if !res.Consumed && res.ResultTier > gs.MaxUnlockedTier {
		gs.MaxUnlockedTier = res.ResultTier
		res.Unlocked = true
	}
	return res
}
