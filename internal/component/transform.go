package component

// Transform stores an entity's position and size in world units.
// Pure data, zero methods — all mutations happen in System functions.
type Transform struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}
