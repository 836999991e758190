package core

// Size describes the dimensions of a canvas in pixels.
type Size struct {
	W int
	H int
}
