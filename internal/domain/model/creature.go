// Package model contains domain models passed between layers.
package model

// Sex of the described creature.
type Sex string

// Recognized sexes. Anything else is treated as unknown.
const (
	SexFemale  Sex = "female"
	SexMale    Sex = "male"
	SexUnknown Sex = "unknown"
)

// Supported game variants. The variant selects which sprite set is fetched.
const (
	GameASA = "ASA"
	GameASE = "ASE"
)

// Output formats for the renderer.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// InfographicRequest mirrors the JSON body of POST /api/infographic.
// Required fields use pointers so that absence is distinguishable from an
// explicit zero value during validation.
type InfographicRequest struct {
	Species             string         `json:"species"`
	LevelsWild          *[]int         `json:"levelsWild"`
	LevelsDom           *[]int         `json:"levelsDom"`
	LevelsMutated       *[]int         `json:"levelsMutated,omitempty"`
	Sex                 string         `json:"sex,omitempty"`
	Colors              []int          `json:"colors,omitempty"`
	TamingEffectiveness *float64       `json:"tamingEffectiveness,omitempty"`
	ImprintingBonus     *float64       `json:"imprintingBonus,omitempty"`
	IsBred              *bool          `json:"isBred,omitempty"`
	IsNeutered          bool           `json:"isNeutered,omitempty"`
	MutagenApplied      bool           `json:"mutagenApplied,omitempty"`
	MutationCount       int            `json:"mutationCount,omitempty"`
	Generation          int            `json:"generation,omitempty"`
	Game                string         `json:"game,omitempty"`
	Options             *RenderOptions `json:"options,omitempty"`
}

// RenderOptions carries caller-supplied rendering overrides.
type RenderOptions struct {
	Format string `json:"format,omitempty"`
}

// Creature is the validated, default-filled, derived form of a request.
// Lifecycle: constructed once per request, consumed by the renderer,
// then discarded; never persisted.
type Creature struct {
	Species       string
	LevelsWild    [StatSlots]int
	LevelsDom     [StatSlots]int
	LevelsMutated [StatSlots]int
	Sex           Sex
	Colors        [ColorRegions]int

	TamingEffectiveness float64
	ImprintingBonus     float64
	IsBred              bool
	IsNeutered          bool
	MutagenApplied      bool
	MutationCount       int
	Generation          int

	// Derived, never accepted from the caller.
	Level        int
	LevelHatched int
	IsTamed      bool
	// EffectiveTE is the taming input handed to stat computation:
	// 1.0 for bred creatures, else the supplied effectiveness.
	EffectiveTE float64
}

// Rendered is a finished response body with its content type.
type Rendered struct {
	Body        []byte
	ContentType string
	FromCache   bool
}
