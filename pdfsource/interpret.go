package pdfsource

import (
	"math"
	"unicode"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/morgue/model"
)

// glyph is one shown character in device space (origin bottom-left, y up)
type glyph struct {
	r      rune
	x0, x1 float64
	y      float64 // baseline
	size   float64
	space  bool
}

// placement is an XObject drawn with Do, in device space
type placement struct {
	name                   string
	minX, maxX, minY, maxY float64
}

// interpreter walks content stream operations and records where text and
// XObjects land on the page
type interpreter struct {
	config Config
	state  *stateStack

	glyphs     []glyph
	placements []placement
}

func newInterpreter(config Config) *interpreter {
	return &interpreter{
		config: config,
		state:  newStateStack(),
	}
}

// run applies every operation in order. Operators outside text positioning
// and XObject placement are ignored, as are operations with malformed
// operands.
func (in *interpreter) run(ops []operation) {
	for _, o := range ops {
		in.apply(o)
	}
}

func (in *interpreter) apply(o operation) {
	s := in.state
	ts := &s.cur.text

	switch o.op {
	case "q":
		s.save()
	case "Q":
		s.restore()
	case "cm":
		if m, ok := matrixArgs(o.args); ok {
			s.concat(m)
		}
	case "BT":
		s.beginText()
	case "Tf":
		if len(o.args) >= 2 {
			if n, ok := o.args[len(o.args)-2].(name); ok {
				ts.font = string(n)
			}
			if v, ok := o.args[len(o.args)-1].(float64); ok {
				ts.size = v
			}
		}
	case "Tc":
		if v, ok := numArgs(o.args, 1); ok {
			ts.charSpacing = v[0]
		}
	case "Tw":
		if v, ok := numArgs(o.args, 1); ok {
			ts.wordSpacing = v[0]
		}
	case "Tz":
		if v, ok := numArgs(o.args, 1); ok {
			ts.hScale = v[0] / 100
		}
	case "TL":
		if v, ok := numArgs(o.args, 1); ok {
			ts.leading = v[0]
		}
	case "Ts":
		if v, ok := numArgs(o.args, 1); ok {
			ts.rise = v[0]
		}
	case "Tm":
		if m, ok := matrixArgs(o.args); ok {
			s.setTextMatrix(m)
		}
	case "Td":
		if v, ok := numArgs(o.args, 2); ok {
			s.moveText(v[0], v[1])
		}
	case "TD":
		if v, ok := numArgs(o.args, 2); ok {
			ts.leading = -v[1]
			s.moveText(v[0], v[1])
		}
	case "T*":
		s.nextLine()
	case "Tj":
		if str, ok := lastString(o.args); ok {
			in.show(str)
		}
	case "'":
		s.nextLine()
		if str, ok := lastString(o.args); ok {
			in.show(str)
		}
	case "\"":
		if len(o.args) == 3 {
			if v, ok := numArgs(o.args[:2], 2); ok {
				ts.wordSpacing = v[0]
				ts.charSpacing = v[1]
			}
		}
		s.nextLine()
		if str, ok := lastString(o.args); ok {
			in.show(str)
		}
	case "TJ":
		if len(o.args) == 0 {
			return
		}
		arr, ok := o.args[len(o.args)-1].([]any)
		if !ok {
			return
		}
		for _, el := range arr {
			switch v := el.(type) {
			case []byte:
				in.show(v)
			case float64:
				s.advance(-v / 1000 * ts.size * ts.hScale)
			}
		}
	case "Do":
		if len(o.args) > 0 {
			if n, ok := o.args[len(o.args)-1].(name); ok {
				in.place(string(n))
			}
		}
	}
}

// show records one glyph per byte of str and advances the text matrix.
// Glyph widths are estimated as a fixed fraction of the font size.
func (in *interpreter) show(str []byte) {
	s := in.state
	ts := &s.cur.text

	for _, b := range str {
		r := charmap.Windows1252.DecodeByte(b)
		width := in.config.GlyphWidth * ts.size * ts.hScale

		rm := s.renderMatrix()
		origin := rm.Transform(model.Point{X: 0, Y: ts.rise})
		end := rm.Transform(model.Point{X: width, Y: ts.rise})

		if !unicode.IsControl(r) {
			in.glyphs = append(in.glyphs, glyph{
				r:     r,
				x0:    math.Min(origin.X, end.X),
				x1:    math.Max(origin.X, end.X),
				y:     origin.Y,
				size:  s.effectiveSize(),
				space: unicode.IsSpace(r),
			})
		}

		tx := ts.size*in.config.GlyphWidth + ts.charSpacing
		if b == ' ' {
			tx += ts.wordSpacing
		}
		s.advance(tx * ts.hScale)
	}
}

// place records the device-space box of the unit square under the CTM
func (in *interpreter) place(n string) {
	ctm := in.state.cur.ctm
	corners := [4]model.Point{
		ctm.Transform(model.Point{X: 0, Y: 0}),
		ctm.Transform(model.Point{X: 1, Y: 0}),
		ctm.Transform(model.Point{X: 0, Y: 1}),
		ctm.Transform(model.Point{X: 1, Y: 1}),
	}

	p := placement{
		name: n,
		minX: math.Inf(1), minY: math.Inf(1),
		maxX: math.Inf(-1), maxY: math.Inf(-1),
	}
	for _, c := range corners {
		p.minX = math.Min(p.minX, c.X)
		p.maxX = math.Max(p.maxX, c.X)
		p.minY = math.Min(p.minY, c.Y)
		p.maxY = math.Max(p.maxY, c.Y)
	}
	in.placements = append(in.placements, p)
}

// numArgs returns the last n operands as numbers
func numArgs(args []any, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i, a := range args[len(args)-n:] {
		v, ok := a.(float64)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func matrixArgs(args []any) (model.Matrix, bool) {
	v, ok := numArgs(args, 6)
	if !ok {
		return model.Matrix{}, false
	}
	return model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]}, true
}

func lastString(args []any) ([]byte, bool) {
	if len(args) == 0 {
		return nil, false
	}
	s, ok := args[len(args)-1].([]byte)
	return s, ok
}
