package core

// Token is one circular fruit body in the container
type Token struct {
	Kinetic

	ID   uint64
	Tier int

	// Radius is cached from the catalog at creation, never set independently
	Radius float64

	// Age counts ticks since creation, never decremented
	Age int

	// StillFrames counts consecutive ticks below the stillness threshold
	StillFrames int
	Sleeping    bool
}

// Top returns the Y of the token's upper edge
func (t *Token) Top() float64 {
	return t.Pos.Y - t.Radius
}

// Wake clears the sleep state
func (t *Token) Wake() {
	t.Sleeping = false
	t.StillFrames = 0
}
