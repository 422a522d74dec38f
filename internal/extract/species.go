package extract

import (
	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
)

// BuildSpeciesMeta derives the normalized per-species record: color-region
// enablement, used-stat flags, multiplier-adjusted stat descriptors, and
// imprinting multipliers. preset may be shorter than the slot count or carry
// nulls; such slots use the identity multiplier.
func BuildSpeciesMeta(sp SpeciesInput, preset []*model.StatMultiplier) model.SpeciesMeta {
	meta := model.SpeciesMeta{
		TamedBaseHealthMultiplier: 1,
		StatNames:                 sp.StatNames,
	}
	if sp.TamedBaseHealthMultiplier != nil {
		meta.TamedBaseHealthMultiplier = *sp.TamedBaseHealthMultiplier
	}

	for i := 0; i < model.StatSlots; i++ {
		if i < len(sp.StatImprintMult) {
			meta.StatImprintMultipliers[i] = sp.StatImprintMult[i]
		}
		if i >= len(sp.FullStatsRaw) || sp.FullStatsRaw[i] == nil {
			// UsedStats stays false; the flag is derived from presence only.
			continue
		}
		normalized := stats.ApplyMultiplier(*sp.FullStatsRaw[i], multiplierFor(preset, i))
		meta.FullStatsRaw[i] = &normalized
		meta.UsedStats[i] = true
	}

	for i := 0; i < model.ColorRegions; i++ {
		if i >= len(sp.Colors) || sp.Colors[i] == nil {
			continue
		}
		meta.EnabledColorRegions[i] = true
		name := sp.Colors[i].Name
		meta.ColorRegionNames[i] = &name
	}

	return meta
}

// multiplierFor picks the preset tuple for a slot, falling back to identity
// when the preset lacks an entry.
func multiplierFor(preset []*model.StatMultiplier, slot int) model.StatMultiplier {
	if slot < len(preset) && preset[slot] != nil {
		return *preset[slot]
	}
	return model.IdentityMultiplier()
}
