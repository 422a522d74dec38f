package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"text/template"

	"github.com/okian/broodsheet/internal/domain/model"
)

// Stat display names by slot, used when the species carries no override.
var statLabels = [model.StatSlots]string{
	"Health", "Stamina", "Torpidity", "Oxygen", "Food", "Water",
	"Temperature", "Weight", "Melee", "Speed", "Fortitude", "Crafting",
}

// SVGRenderer is the default renderer: a template-based stat sheet. It
// supports SVG output only; raster output needs an injected rasterizing
// renderer.
type SVGRenderer struct {
	tmpl *template.Template
}

// NewSVGRenderer creates the default renderer.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{
		tmpl: template.Must(template.New("sheet").Parse(sheetTemplate)),
	}
}

// statRow is one rendered stat line.
type statRow struct {
	Label    string
	Wild     int
	Dom      int
	Value    string
	Breeding string
	Y        int
}

// regionSwatch is one rendered color-region swatch.
type regionSwatch struct {
	Name string
	Fill string
	X    int
}

// sheetView is the template payload.
type sheetView struct {
	Species      string
	Game         string
	Level        int
	LevelHatched int
	Sex          model.Sex
	Tamed        bool
	Bred         bool
	SpriteURI    string
	Stats        []statRow
	Regions      []regionSwatch
}

// Render produces the stat sheet. Only FormatSVG is supported here.
func (r *SVGRenderer) Render(ctx context.Context, in *Input, format string) ([]byte, string, error) {
	if format != model.FormatSVG {
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	view := sheetView{
		Species:      in.Creature.Species,
		Game:         in.Game,
		Level:        in.Creature.Level,
		LevelHatched: in.Creature.LevelHatched,
		Sex:          in.Creature.Sex,
		Tamed:        in.Creature.IsTamed,
		Bred:         in.Creature.IsBred,
	}
	if len(in.Sprite) > 0 {
		view.SpriteURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(in.Sprite)
	}

	y := 130
	for i := 0; i < model.StatSlots; i++ {
		if !in.Meta.UsedStats[i] {
			continue
		}
		view.Stats = append(view.Stats, statRow{
			Label:    r.label(in.Meta, i),
			Wild:     in.Creature.LevelsWild[i],
			Dom:      in.Creature.LevelsDom[i],
			Value:    fmt.Sprintf("%.1f", in.Values.Current[i]),
			Breeding: fmt.Sprintf("%.1f", in.Values.Breeding[i]),
			Y:        y,
		})
		y += 22
	}

	x := 20
	for i := 0; i < model.ColorRegions; i++ {
		c := in.RegionColors[i]
		if c == nil {
			continue
		}
		view.Regions = append(view.Regions, regionSwatch{
			Name: c.Name,
			Fill: HexColor(c.RGBA),
			X:    x,
		})
		x += 40
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.Bytes(), ContentTypeSVG, nil
}

// label picks the species-specific stat name when present.
func (r *SVGRenderer) label(meta *model.SpeciesMeta, slot int) string {
	if name, ok := meta.StatNames[fmt.Sprintf("%d", slot)]; ok {
		return name
	}
	return statLabels[slot]
}

const sheetTemplate = `<svg xmlns="http://www.w3.org/2000/svg" width="640" height="440" viewBox="0 0 640 440">
  <rect width="640" height="440" fill="#1c1c24"/>
  <text x="20" y="40" font-family="sans-serif" font-size="26" fill="#ffffff">{{.Species}}</text>
  <text x="20" y="68" font-family="sans-serif" font-size="14" fill="#9aa0b0">Level {{.Level}} (hatched {{.LevelHatched}}) &#183; {{.Sex}}{{if .Bred}} &#183; bred{{else if .Tamed}} &#183; tamed{{end}} &#183; {{.Game}}</text>
{{- if .SpriteURI}}
  <image x="400" y="90" width="220" height="220" href="{{.SpriteURI}}"/>
{{- end}}
  <text x="20" y="110" font-family="sans-serif" font-size="13" fill="#9aa0b0">Stat / wild / dom / value (at breeding)</text>
{{- range .Stats}}
  <text x="20" y="{{.Y}}" font-family="monospace" font-size="13" fill="#e6e6ee">{{.Label}}: {{.Wild}}/{{.Dom}} {{.Value}} ({{.Breeding}})</text>
{{- end}}
{{- range .Regions}}
  <rect x="{{.X}}" y="400" width="32" height="20" fill="{{.Fill}}"><title>{{.Name}}</title></rect>
{{- end}}
</svg>
`
