// Package model contains domain models passed between layers.
package model

// Color ID ranges. Base colors occupy the dense range [1, N] in input order;
// dye colors occupy [DyeIDOffset+1, DyeIDOffset+M]. IDs are positional, not
// content-derived, and stable across runs given stable input order.
const (
	BaseColorIDStart = 1
	DyeIDOffset      = 200
)

// ColorDefinition is one entry in the generated color table.
// RGBA components are linear-space floats in [0, 1].
type ColorDefinition struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	RGBA  [4]float64 `json:"linearRgba"`
	IsDye bool       `json:"isDye"`
}
