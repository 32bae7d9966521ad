// Package scene loads drawing scripts and display settings from TOML.
//
// A scene is an ordered list of shapes in normalized [0,1] coordinates:
//
//	[display]
//	color_mode  = "auto"   # auto | truecolor | 256
//	backend     = "ansi"   # ansi | tcell
//	reserve_row = true
//
//	[[shape]]
//	kind   = "line"        # dot | line | polyline
//	points = [[0.0, 0.0], [1.0, 1.0]]
//	color  = "#ff0000"     # hex or palette name
//
// Shapes are replayed in file order; overlapping cells blend.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/termdraw/framebuffer"
	"github.com/lixenwraith/termdraw/terminal"
)

// ErrInvalidScene wraps every validation failure
var ErrInvalidScene = errors.New("invalid scene")

// Backend names
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// Shape kinds
const (
	KindDot      = "dot"
	KindLine     = "line"
	KindPolyline = "polyline"
)

// Display holds output settings; empty fields fall back to defaults
type Display struct {
	ColorMode  string `toml:"color_mode"`
	Backend    string `toml:"backend"`
	ReserveRow *bool  `toml:"reserve_row"`
}

// Shape is one drawing instruction as written in the file
type Shape struct {
	Kind   string      `toml:"kind"`
	Points [][]float64 `toml:"points"`
	Color  string      `toml:"color"`
}

// Scene is a validated drawing script
type Scene struct {
	Display Display `toml:"display"`
	Shapes  []Shape `toml:"shape"`

	ops []op
}

// op is a shape resolved to positions and a color
type op struct {
	kind  string
	pts   []framebuffer.NormPos
	color terminal.RGB
}

// Drawer is the surface a scene draws onto
type Drawer interface {
	Dot(p framebuffer.NormPos, c terminal.RGB)
	Line(from, to framebuffer.NormPos, c terminal.RGB)
	Polyline(pts []framebuffer.NormPos, c terminal.RGB)
}

// Load reads and validates a scene file
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene document
// Unknown keys are rejected so typos do not silently drop shapes
func Parse(data []byte) (*Scene, error) {
	var s Scene
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidScene, strings.Join(keys, ", "))
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// compile validates display settings and resolves every shape
func (s *Scene) compile() error {
	if err := s.Display.validate(); err != nil {
		return err
	}

	s.ops = make([]op, 0, len(s.Shapes))
	for i, sh := range s.Shapes {
		o, err := sh.resolve()
		if err != nil {
			return fmt.Errorf("%w: shape %d: %v", ErrInvalidScene, i, err)
		}
		s.ops = append(s.ops, o)
	}
	return nil
}

func (d Display) validate() error {
	switch strings.ToLower(d.Backend) {
	case "", BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidScene, d.Backend)
	}
	if _, err := terminal.ParseColorMode(d.ColorMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return nil
}

// BackendName returns the configured backend, defaulting to ANSI
func (d Display) BackendName() string {
	if d.Backend == "" {
		return BackendANSI
	}
	return strings.ToLower(d.Backend)
}

// Reserve returns whether the last terminal row is kept free, defaulting to true
func (d Display) Reserve() bool {
	return d.ReserveRow == nil || *d.ReserveRow
}

func (sh Shape) resolve() (op, error) {
	kind := strings.ToLower(sh.Kind)
	switch kind {
	case KindDot:
		if len(sh.Points) != 1 {
			return op{}, fmt.Errorf("dot needs 1 point, got %d", len(sh.Points))
		}
	case KindLine:
		if len(sh.Points) != 2 {
			return op{}, fmt.Errorf("line needs 2 points, got %d", len(sh.Points))
		}
	case KindPolyline:
		if len(sh.Points) < 2 {
			return op{}, fmt.Errorf("polyline needs at least 2 points, got %d", len(sh.Points))
		}
	default:
		return op{}, fmt.Errorf("unknown kind %q", sh.Kind)
	}

	pts := make([]framebuffer.NormPos, len(sh.Points))
	for i, p := range sh.Points {
		if len(p) != 2 {
			return op{}, fmt.Errorf("point %d has %d coordinates, want 2", i, len(p))
		}
		for _, v := range p {
			// Negated form also rejects NaN
			if !(v >= 0 && v <= 1) {
				return op{}, fmt.Errorf("point %d coordinate %v outside [0,1]", i, v)
			}
		}
		pts[i] = framebuffer.NormPos{X: p[0], Y: p[1]}
	}

	color, err := terminal.ParseColor(sh.Color)
	if err != nil {
		return op{}, err
	}
	return op{kind: kind, pts: pts, color: color}, nil
}

// Len returns the number of shapes
func (s *Scene) Len() int { return len(s.ops) }

// Draw replays every shape onto d in order
func (s *Scene) Draw(d Drawer) {
	for _, o := range s.ops {
		switch o.kind {
		case KindDot:
			d.Dot(o.pts[0], o.color)
		case KindLine:
			d.Line(o.pts[0], o.pts[1], o.color)
		case KindPolyline:
			d.Polyline(o.pts, o.color)
		}
	}
}

// Encode writes the scene back out as TOML
func (s *Scene) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}
