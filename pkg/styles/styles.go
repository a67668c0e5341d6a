// Package styles gives style indices a concrete appearance: a sheet of
// named styles loaded from YAML, and perceptual blending between styles
// for filling dynamic pool slots while an animation is in flight.
//
// The core never interprets appearance itself, the event and visual
// layers traffic purely in indices; this package is the bridge an
// application uses between its style sheet and the draw collaborator.
package styles

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	slateerr "github.com/go-slate/slate/pkg/errors"
)

// Style is the concrete appearance of one style index.
type Style struct {
	// Background is the fill color.
	Background colorful.Color
	// Foreground is the content color.
	Foreground colorful.Color
	// Border is the outline color.
	Border colorful.Color
	// Opacity is the overall opacity in [0, 1].
	Opacity float64
}

// Blend interpolates between two styles at t in [0, 1]. Colors blend in
// Lab space, which keeps midpoints perceptually between the endpoints
// instead of detouring through gray.
func Blend(a, b Style, t float64) Style {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Style{
		Background: a.Background.BlendLab(b.Background, t).Clamped(),
		Foreground: a.Foreground.BlendLab(b.Foreground, t).Clamped(),
		Border:     a.Border.BlendLab(b.Border, t).Clamped(),
		Opacity:    a.Opacity + (b.Opacity-a.Opacity)*t,
	}
}

// Sheet is an ordered list of styles addressed by style index, with an
// optional name per entry for lookup from configuration.
type Sheet struct {
	styles []Style
	names  map[string]int
}

// NewSheet builds a sheet from styles in index order.
func NewSheet(list ...Style) *Sheet {
	return &Sheet{styles: list, names: map[string]int{}}
}

// Len returns the number of styles in the sheet.
func (s *Sheet) Len() int {
	return len(s.styles)
}

// Style returns the style at index i.
func (s *Sheet) Style(i int) Style {
	return s.styles[i]
}

// Index returns the index of the named style.
func (s *Sheet) Index(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}

// Append adds a style under an optional name and returns its index.
func (s *Sheet) Append(name string, style Style) int {
	i := len(s.styles)
	s.styles = append(s.styles, style)
	if name != "" {
		if s.names == nil {
			s.names = map[string]int{}
		}
		s.names[name] = i
	}
	return i
}

type sheetDoc struct {
	Styles []styleDoc `yaml:"styles"`
}

type styleDoc struct {
	Name       string  `yaml:"name"`
	Background string  `yaml:"background"`
	Foreground string  `yaml:"foreground"`
	Border     string  `yaml:"border"`
	Opacity    float64 `yaml:"opacity"`
}

// ParseSheet reads a sheet from a YAML document of the form:
//
//	styles:
//	  - name: idle
//	    background: "#1e1e2e"
//	    foreground: "#cdd6f4"
//	    border: "#45475a"
//	    opacity: 1.0
//
// Omitted colors default to black, omitted opacity to 1.
func ParseSheet(data []byte) (*Sheet, error) {
	const op = "styles.ParseSheet"
	var doc sheetDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, slateerr.New(op, slateerr.KindConfig, err)
	}
	sheet := NewSheet()
	for i, entry := range doc.Styles {
		style := Style{Opacity: 1}
		if entry.Opacity != 0 {
			style.Opacity = entry.Opacity
		}
		var err error
		if style.Background, err = parseColor(entry.Background); err != nil {
			return nil, slateerr.Errorf(op, slateerr.KindConfig, "style %d (%q) background: %v", i, entry.Name, err)
		}
		if style.Foreground, err = parseColor(entry.Foreground); err != nil {
			return nil, slateerr.Errorf(op, slateerr.KindConfig, "style %d (%q) foreground: %v", i, entry.Name, err)
		}
		if style.Border, err = parseColor(entry.Border); err != nil {
			return nil, slateerr.Errorf(op, slateerr.KindConfig, "style %d (%q) border: %v", i, entry.Name, err)
		}
		sheet.Append(entry.Name, style)
	}
	return sheet, nil
}

// LoadSheet reads a sheet from a YAML file.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, slateerr.New("styles.LoadSheet", slateerr.KindConfig, err)
	}
	return ParseSheet(data)
}

func parseColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return colorful.Color{}, nil
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}
