// Package extract implements the offline batch pipeline that converts an
// upstream game-data dump into the two lookup tables consumed at runtime.
package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/okian/broodsheet/internal/domain/model"
)

// Document is the upstream game-data dump. It is read fully into memory and
// transformed in a single batch pass.
type Document struct {
	Version          string         `json:"version,omitempty"`
	ColorDefinitions []ColorInput   `json:"colorDefinitions"`
	DyeDefinitions   []ColorInput   `json:"dyeDefinitions"`
	Species          []SpeciesInput `json:"species"`
}

// ColorInput is one raw color or dye definition.
type ColorInput struct {
	Name string     `json:"name"`
	RGBA [4]float64 `json:"linearRgba"`
}

// SpeciesInput is one raw species record. Stat and color arrays may be
// shorter than the fixed slot counts or contain nulls.
type SpeciesInput struct {
	Name                      string                     `json:"name"`
	FullStatsRaw              []*model.RawStatDescriptor `json:"fullStatsRaw"`
	Colors                    []*ColorRegionInput        `json:"colors"`
	TamedBaseHealthMultiplier *float64                   `json:"tamedBaseHealthMultiplier,omitempty"`
	StatImprintMult           []float64                  `json:"statImprintMult,omitempty"`
	StatNames                 map[string]string          `json:"statNames,omitempty"`
}

// ColorRegionInput describes one paintable region on a species.
type ColorRegionInput struct {
	Name string `json:"name"`
}

// MultiplierDocument holds named server-multiplier presets. A preset carries
// up to one tuple per stat slot; short or null entries fall back to identity.
type MultiplierDocument struct {
	Presets map[string][]*model.StatMultiplier `json:"presets"`
}

// ReadDocument loads and parses the upstream dump. Any failure here is fatal
// for the extraction run; a half-built lookup table is unsafe to ship.
func ReadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseDocument, err)
	}
	return &doc, nil
}

// ReadMultiplierDocument loads the server-multiplier document. Failures are
// reported but recoverable; callers fall back to identity multipliers.
func ReadMultiplierDocument(path string) (*MultiplierDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMultipliers, err)
	}
	var doc MultiplierDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadMultipliers, err)
	}
	return &doc, nil
}
