package scene

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termdraw/terminal"
)

// Demo returns a starburst: spokes from the centre with hues spread around the
// color wheel, a border frame and a white centre dot
func Demo(spokes int) *Scene {
	if spokes < 1 {
		spokes = 1
	}

	s := &Scene{}
	const radius = 0.45

	for i := 0; i < spokes; i++ {
		angle := 2 * math.Pi * float64(i) / float64(spokes)
		hue := 360 * float64(i) / float64(spokes)
		end := []float64{
			clampUnit(0.5 + radius*math.Cos(angle)),
			clampUnit(0.5 + radius*math.Sin(angle)),
		}
		s.Shapes = append(s.Shapes, Shape{
			Kind:   KindLine,
			Points: [][]float64{{0.5, 0.5}, end},
			Color:  terminal.FromColorful(colorful.Hsv(hue, 0.85, 1.0)).Hex(),
		})
	}

	s.Shapes = append(s.Shapes,
		Shape{
			Kind:   KindPolyline,
			Points: [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}},
			Color:  "gray",
		},
		Shape{
			Kind:   KindDot,
			Points: [][]float64{{0.5, 0.5}},
			Color:  "white",
		},
	)

	// Generated shapes are always in range
	if err := s.compile(); err != nil {
		panic(err)
	}
	return s
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
