// Package render defines the rendering capability interfaces and the default
// SVG stat-sheet renderer. The orchestrator depends only on the interfaces;
// alternative engines (e.g. a rasterizing renderer) are injected.
package render

import (
	"context"

	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
)

// Content types for the supported output formats.
const (
	ContentTypeSVG = "image/svg+xml"
	ContentTypePNG = "image/png"
)

// Input carries everything a renderer needs for one infographic.
type Input struct {
	Creature *model.Creature
	Meta     *model.SpeciesMeta
	Values   stats.Values

	// Sprite is the (possibly colorized) creature image, nil when no image
	// is available.
	Sprite []byte

	// RegionColors holds the resolved color per region; nil means the region
	// is uncolorized (disabled, or no color supplied).
	RegionColors [model.ColorRegions]*model.ColorDefinition

	Game string
}

// Renderer produces the final response body for an input and format.
type Renderer interface {
	Render(ctx context.Context, in *Input, format string) (body []byte, contentType string, err error)
}

// Colorizer applies region colors to a base sprite using its mask. Both
// images are PNG bytes.
type Colorizer interface {
	Colorize(base, mask []byte, colors [model.ColorRegions]*model.ColorDefinition) ([]byte, error)
}

// PassthroughColorizer returns the base sprite untouched. It stands in for
// the pixel-level routine, which is supplied externally.
type PassthroughColorizer struct{}

// NewPassthroughColorizer returns the default colorizer.
func NewPassthroughColorizer() *PassthroughColorizer {
	return &PassthroughColorizer{}
}

// Colorize returns base unchanged.
func (*PassthroughColorizer) Colorize(base, _ []byte, _ [model.ColorRegions]*model.ColorDefinition) ([]byte, error) {
	return base, nil
}
