package extract

import (
	"github.com/okian/broodsheet/internal/domain/model"
)

// BuildColorTable assigns stable sequential IDs to base and dye color
// definitions and emits a flat color table. Base colors take the dense range
// [1, N] in input order; dyes take [201, 200+M]. Re-running with reordered
// input changes IDs; the output is a frozen artifact, not recomputed per
// request.
func BuildColorTable(base, dyes []ColorInput) []model.ColorDefinition {
	table := make([]model.ColorDefinition, 0, len(base)+len(dyes))
	for i, c := range base {
		table = append(table, model.ColorDefinition{
			ID:   model.BaseColorIDStart + i,
			Name: c.Name,
			RGBA: c.RGBA,
		})
	}
	for i, d := range dyes {
		table = append(table, model.ColorDefinition{
			ID:    model.DyeIDOffset + 1 + i,
			Name:  d.Name,
			RGBA:  d.RGBA,
			IsDye: true,
		})
	}
	return table
}
