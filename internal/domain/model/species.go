// Package model contains domain models passed between layers.
package model

// Fixed slot counts. Every species carries exactly this many stat and
// color-region slots; unpopulated slots are explicit nils/false, never omitted.
const (
	StatSlots    = 12
	ColorRegions = 6

	// TorporSlot is the wild-level baseline used for total-level derivation.
	TorporSlot = 2
)

// RawStatDescriptor indices.
const (
	StatBaseValue = iota
	StatIncPerWildLevel
	StatIncPerDomLevel
	StatAddWhenTamed
	StatMultAffinity
)

// StatMultiplier indices.
const (
	MultTamingAdd = iota
	MultTamingMult
	MultDomLevel
	MultWildLevel
)

// RawStatDescriptor describes one of the 12 fixed stat slots for a species:
// [BaseValue, IncPerWildLevel, IncPerDomLevel, AddWhenTamed, MultAffinity].
// Immutable once extracted.
type RawStatDescriptor [5]float64

// StatMultiplier is a per-stat server multiplier tuple:
// [TamingAdd, TamingMult, DomLevel, WildLevel].
type StatMultiplier [4]float64

// IdentityMultiplier leaves a stat descriptor unchanged. It is the documented
// fallback whenever multiplier data is missing.
func IdentityMultiplier() StatMultiplier {
	return StatMultiplier{1, 1, 1, 1}
}

// SpeciesMeta is the per-species record in the generated species table.
//
// Invariant: UsedStats[i] == (FullStatsRaw[i] != nil) for every slot; the
// used-stat flags are derived from presence of stat data, never set
// independently.
type SpeciesMeta struct {
	EnabledColorRegions       [ColorRegions]bool            `json:"enabledColorRegions"`
	UsedStats                 [StatSlots]bool               `json:"usedStats"`
	StatNames                 map[string]string             `json:"statNames,omitempty"`
	ColorRegionNames          [ColorRegions]*string         `json:"colorRegionNames"`
	FullStatsRaw              [StatSlots]*RawStatDescriptor `json:"fullStatsRaw"`
	TamedBaseHealthMultiplier float64                       `json:"tamedBaseHealthMultiplier"`
	StatImprintMultipliers    [StatSlots]float64            `json:"statImprintMultipliers"`
}
