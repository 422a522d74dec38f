// Package stats contains the stat-normalization and level arithmetic shared
// by the extraction pipeline and the request orchestrator.
package stats

import (
	"github.com/okian/broodsheet/internal/domain/model"
)

// ApplyMultiplier returns a new descriptor with the server multiplier folded
// in, matching the external reference pipeline exactly:
//
//   - BaseValue is unchanged.
//   - IncPerWildLevel scales by the WildLevel factor.
//   - IncPerDomLevel scales by the DomLevel factor.
//   - AddWhenTamed scales by the TamingAdd factor only when strictly positive.
//   - MultAffinity scales by the TamingMult factor only when strictly positive.
//
// The positivity guard keeps zero/negative "unused" sentinels from being
// amplified into non-zero values. Pure, total function.
func ApplyMultiplier(raw model.RawStatDescriptor, m model.StatMultiplier) model.RawStatDescriptor {
	out := raw
	out[model.StatIncPerWildLevel] = raw[model.StatIncPerWildLevel] * m[model.MultWildLevel]
	out[model.StatIncPerDomLevel] = raw[model.StatIncPerDomLevel] * m[model.MultDomLevel]
	if raw[model.StatAddWhenTamed] > 0 {
		out[model.StatAddWhenTamed] = raw[model.StatAddWhenTamed] * m[model.MultTamingAdd]
	}
	if raw[model.StatMultAffinity] > 0 {
		out[model.StatMultAffinity] = raw[model.StatMultAffinity] * m[model.MultTamingMult]
	}
	return out
}

// Level computes the creature's total level: the wild torpor level plus one
// (the hatch/tame baseline) plus every spent domesticated level.
func Level(wild, dom [model.StatSlots]int) int {
	level := wild[model.TorporSlot] + 1
	for _, d := range dom {
		level += d
	}
	return level
}

// LevelHatched computes the creature's level at hatch/tame time.
func LevelHatched(wild [model.StatSlots]int) int {
	return wild[model.TorporSlot] + 1
}
