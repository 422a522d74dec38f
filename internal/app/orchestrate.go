package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/okian/broodsheet/internal/adapters/cache"
	"github.com/okian/broodsheet/internal/domain/model"
	"github.com/okian/broodsheet/internal/domain/stats"
	"github.com/okian/broodsheet/internal/render"
	"github.com/okian/broodsheet/pkg/logger"
	"github.com/okian/broodsheet/pkg/metrics"
)

// Infographic runs the per-request pipeline over the raw body: cache probe,
// parse, validate, resolve, derive, compute, sprite fetch, render, and a
// fire-and-forget cache store. It short-circuits on the first failure.
func (s *Service) Infographic(ctx context.Context, body []byte) (*model.Rendered, error) {
	start := time.Now()

	// Cache probe comes first; on a hit nothing else runs.
	key := cache.Key(body)
	if entry, ok := s.cache.Get(ctx, key); ok {
		return &model.Rendered{Body: entry.Body, ContentType: entry.ContentType, FromCache: true}, nil
	}

	var req model.InfographicRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, badInput("malformed request body")
	}

	if err := validate(&req); err != nil {
		return nil, err
	}

	meta, ok := s.species.Get(req.Species)
	if !ok {
		return nil, badInput("unknown species %q", req.Species)
	}

	creature := buildCreature(&req)

	game := req.Game
	if game == "" {
		game = s.defaultGame
	}
	format := model.FormatSVG
	if req.Options != nil && req.Options.Format != "" {
		format = req.Options.Format
	}
	if format != model.FormatSVG && format != model.FormatPNG {
		return nil, badInput("unsupported format %q", format)
	}

	values, err := s.calculator.Compute(ctx, meta, creature)
	if err != nil {
		return nil, fmt.Errorf("stat computation failed: %w", err)
	}

	regionColors := s.resolveRegionColors(creature, meta)
	sprite := s.acquireSprite(ctx, creature, regionColors, game)

	in := &render.Input{
		Creature:     creature,
		Meta:         meta,
		Values:       values,
		Sprite:       sprite,
		RegionColors: regionColors,
		Game:         game,
	}
	out, contentType, err := s.renderer.Render(ctx, in, format)
	if err != nil {
		metrics.RecordRenderError()
		return nil, fmt.Errorf("render dispatch failed: %w", err)
	}
	metrics.RecordRender(format)
	metrics.RecordRenderDuration(float64(time.Since(start).Milliseconds()))

	// Cache store is decoupled from the response lifecycle: handed to the
	// background runner and never awaited.
	s.tasks.Submit(func(taskCtx context.Context) error {
		s.cache.Set(taskCtx, key, cache.Entry{Body: out, ContentType: contentType})
		return nil
	})

	return &model.Rendered{Body: out, ContentType: contentType}, nil
}

// validate checks the required fields: species name plus correctly shaped
// wild and domesticated level arrays.
func validate(req *model.InfographicRequest) error {
	switch {
	case req.Species == "":
		return badInput("missing species")
	case req.LevelsWild == nil:
		return badInput("missing levelsWild")
	case len(*req.LevelsWild) != model.StatSlots:
		return badInput("levelsWild must have %d entries", model.StatSlots)
	case req.LevelsDom == nil:
		return badInput("missing levelsDom")
	case len(*req.LevelsDom) != model.StatSlots:
		return badInput("levelsDom must have %d entries", model.StatSlots)
	}
	if req.LevelsMutated != nil && len(*req.LevelsMutated) != model.StatSlots {
		return badInput("levelsMutated must have %d entries", model.StatSlots)
	}
	if req.TamingEffectiveness != nil && (*req.TamingEffectiveness < 0 || *req.TamingEffectiveness > 1) {
		return badInput("tamingEffectiveness must be within [0,1]")
	}
	if req.ImprintingBonus != nil && (*req.ImprintingBonus < 0 || *req.ImprintingBonus > 1) {
		return badInput("imprintingBonus must be within [0,1]")
	}
	return nil
}

// buildCreature default-fills the optional fields and derives the computed
// ones. It assumes a validated request.
func buildCreature(req *model.InfographicRequest) *model.Creature {
	c := &model.Creature{
		Species:        req.Species,
		Sex:            parseSex(req.Sex),
		IsNeutered:     req.IsNeutered,
		MutagenApplied: req.MutagenApplied,
		MutationCount:  req.MutationCount,
		Generation:     req.Generation,
	}
	copy(c.LevelsWild[:], *req.LevelsWild)
	copy(c.LevelsDom[:], *req.LevelsDom)
	if req.LevelsMutated != nil {
		copy(c.LevelsMutated[:], *req.LevelsMutated)
	}
	copy(c.Colors[:], req.Colors)
	if req.TamingEffectiveness != nil {
		c.TamingEffectiveness = *req.TamingEffectiveness
	}
	if req.ImprintingBonus != nil {
		c.ImprintingBonus = *req.ImprintingBonus
	}
	if req.IsBred != nil {
		c.IsBred = *req.IsBred
	}

	c.IsTamed = c.IsBred || c.TamingEffectiveness > 0
	c.EffectiveTE = c.TamingEffectiveness
	if c.IsBred {
		c.EffectiveTE = 1
	}
	c.Level = stats.Level(c.LevelsWild, c.LevelsDom)
	c.LevelHatched = stats.LevelHatched(c.LevelsWild)
	return c
}

func parseSex(s string) model.Sex {
	switch model.Sex(s) {
	case model.SexFemale:
		return model.SexFemale
	case model.SexMale:
		return model.SexMale
	default:
		return model.SexUnknown
	}
}

// acquireSprite fetches and colorizes the creature image. Every failure
// degrades: no base image means an imageless render, no mask means the base
// is used uncolorized.
func (s *Service) acquireSprite(ctx context.Context, c *model.Creature, regionColors [model.ColorRegions]*model.ColorDefinition, game string) []byte {
	if s.sprites == nil {
		return nil
	}
	base, mask := s.sprites.FetchPair(ctx, c.Species, game)
	if base == nil {
		return nil
	}
	if mask == nil {
		return base
	}
	colored, err := s.colorizer.Colorize(base, mask, regionColors)
	if err != nil {
		s.logger.Warn(ctx, "sprite colorization failed; using uncolorized base",
			logger.String("species", c.Species),
			logger.Error(err),
		)
		return base
	}
	return colored
}

// resolveRegionColors maps the requested color IDs onto the species' enabled
// regions. Disabled regions and zero IDs resolve to nil (left uncolorized).
func (s *Service) resolveRegionColors(c *model.Creature, meta *model.SpeciesMeta) [model.ColorRegions]*model.ColorDefinition {
	var out [model.ColorRegions]*model.ColorDefinition
	for i := 0; i < model.ColorRegions; i++ {
		if !meta.EnabledColorRegions[i] || c.Colors[i] == 0 {
			continue
		}
		def := s.colors.Resolve(c.Colors[i])
		out[i] = &def
	}
	return out
}
