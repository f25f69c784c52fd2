// Package config loads the TOML settings file.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/BurntSushi/toml"

	"StickerCut/internal/export"
	"StickerCut/internal/state"
)

// ErrInvalid is returned for settings outside their allowed range.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	LogLevel   string     `toml:"log_level"`
	Generation Generation `toml:"generation"`
	Style      Style      `toml:"style"`
	Edit       Edit       `toml:"edit"`
	Export     Export     `toml:"export"`
}

type Generation struct {
	BlurRadius     int     `toml:"blur_radius"`
	Threshold      int     `toml:"threshold"`
	Simplification float64 `toml:"simplification"`
}

type Style struct {
	StrokeColor   string  `toml:"stroke_color"`
	StrokeOpacity float64 `toml:"stroke_opacity"`
	StrokeWidth   float64 `toml:"stroke_width"`
	FillColor     string  `toml:"fill_color"`
	FillOpacity   float64 `toml:"fill_opacity"`
	ShowNodes     bool    `toml:"show_nodes"`
	ShowOriginal  bool    `toml:"show_original"`
	RasterOpacity float64 `toml:"raster_opacity"`
}

type Edit struct {
	HitTolerance  float64 `toml:"hit_tolerance"`
	DoubleClickMS int     `toml:"double_click_ms"`
}

// Export is the pen of the page export.
type Export struct {
	StrokeColor string  `toml:"stroke_color"`
	StrokeWidth float64 `toml:"stroke_width"`
}

// Slider ranges.
const (
	MaxBlurRadius      = 50
	MinThreshold       = 1
	MaxThreshold       = 100
	MaxSimplification  = 20.0
	SimplificationStep = 0.5
)

func Default() Config {
	return Config{
		LogLevel: "info",
		Generation: Generation{
			BlurRadius:     5,
			Threshold:      50,
			Simplification: 2,
		},
		Style: Style{
			StrokeColor:   "#ff0000",
			StrokeOpacity: 1,
			StrokeWidth:   2,
			FillColor:     "#ff0000",
			FillOpacity:   0.1,
			ShowNodes:     true,
			ShowOriginal:  true,
			RasterOpacity: 1,
		},
		Edit: Edit{
			HitTolerance:  state.DefaultHitTolerance,
			DoubleClickMS: int(state.DefaultDoubleClick / time.Millisecond),
		},
		Export: Export{
			StrokeColor: "#ff0000",
			StrokeWidth: 1,
		},
	}
}

// Load decodes the file at path over the defaults and validates the result.
// Keys missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err := check(cfg, md, err); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err := check(cfg, md, err); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func check(cfg Config, md toml.MetaData, err error) error {
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("unknown key %q: %w", undec[0].String(), ErrInvalid)
	}
	return cfg.Validate()
}

func (c Config) Validate() error {
	g := c.Generation
	switch {
	case g.BlurRadius < 0 || g.BlurRadius > MaxBlurRadius:
		return invalid("generation.blur_radius", g.BlurRadius)
	case g.Threshold < MinThreshold || g.Threshold > MaxThreshold:
		return invalid("generation.threshold", g.Threshold)
	case g.Simplification < 0 || g.Simplification > MaxSimplification ||
		math.Mod(g.Simplification, SimplificationStep) != 0:
		return invalid("generation.simplification", g.Simplification)
	}

	s := c.Style
	for _, o := range []struct {
		key string
		v   float64
	}{
		{"style.stroke_opacity", s.StrokeOpacity},
		{"style.fill_opacity", s.FillOpacity},
		{"style.raster_opacity", s.RasterOpacity},
	} {
		if o.v < 0 || o.v > 1 {
			return invalid(o.key, o.v)
		}
	}
	if s.StrokeWidth <= 0 {
		return invalid("style.stroke_width", s.StrokeWidth)
	}
	if c.Edit.HitTolerance <= 0 {
		return invalid("edit.hit_tolerance", c.Edit.HitTolerance)
	}
	if c.Edit.DoubleClickMS <= 0 {
		return invalid("edit.double_click_ms", c.Edit.DoubleClickMS)
	}
	if c.Export.StrokeWidth <= 0 {
		return invalid("export.stroke_width", c.Export.StrokeWidth)
	}
	for key, v := range map[string]string{
		"style.stroke_color":  s.StrokeColor,
		"style.fill_color":    s.FillColor,
		"export.stroke_color": c.Export.StrokeColor,
	} {
		if _, err := state.ParseRGB(v); err != nil {
			return fmt.Errorf("%s: %w: %w", key, ErrInvalid, err)
		}
	}
	return nil
}

func invalid(key string, v any) error {
	return fmt.Errorf("%s = %v: %w", key, v, ErrInvalid)
}

// DocumentStyle converts the [style] section. Colours are assumed valid.
func (c Config) DocumentStyle() state.Style {
	stroke, _ := state.ParseRGB(c.Style.StrokeColor)
	fill, _ := state.ParseRGB(c.Style.FillColor)
	return state.Style{
		StrokeColor:   stroke,
		StrokeOpacity: c.Style.StrokeOpacity,
		StrokeWidth:   c.Style.StrokeWidth,
		FillColor:     fill,
		FillOpacity:   c.Style.FillOpacity,
		ShowNodes:     c.Style.ShowNodes,
	}
}

func (c Config) Params() state.GenerationParams {
	return state.GenerationParams{
		BlurRadius:     c.Generation.BlurRadius,
		Threshold:      c.Generation.Threshold,
		Simplification: c.Generation.Simplification,
	}
}

func (c Config) DoubleClick() time.Duration {
	return time.Duration(c.Edit.DoubleClickMS) * time.Millisecond
}

func (c Config) ExportPen() export.Pen {
	color, _ := state.ParseRGB(c.Export.StrokeColor)
	return export.Pen{Color: color, Width: c.Export.StrokeWidth}
}
