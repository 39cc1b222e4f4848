package component

// RGBA is a plain 8-bit color. The renderer interprets it; the core never does.
type RGBA struct {
	R, G, B, A uint8
}

// Sprite stores an entity's visual reference for the rendering layer.
// TextureRef names a texture in the renderer's atlas; empty means the
// renderer falls back to a colored rectangle.
type Sprite struct {
	TextureRef string
	Color      RGBA
}

// Collider marks an entity as blocking (or not) for movement.
type Collider struct {
	Solid bool
}
