package pdfsource

import (
	"github.com/tsawler/morgue/model"
)

// textState is the PDF text state (Tf, Tc, Tw, Tz, TL, Ts) plus the text
// and text-line matrices
type textState struct {
	font        string
	size        float64
	charSpacing float64
	wordSpacing float64
	hScale      float64 // Tz / 100
	leading     float64
	rise        float64

	matrix     model.Matrix // Tm
	lineMatrix model.Matrix // Tlm
}

// graphicsState is the part of the PDF graphics state that positions text
// and images. It is saved and restored by q and Q.
type graphicsState struct {
	ctm  model.Matrix
	text textState
}

func newGraphicsState() graphicsState {
	return graphicsState{
		ctm: model.Identity(),
		text: textState{
			size:       12,
			hScale:     1,
			matrix:     model.Identity(),
			lineMatrix: model.Identity(),
		},
	}
}

// stateStack tracks the current graphics state and the q/Q save stack
type stateStack struct {
	cur   graphicsState
	saved []graphicsState
}

func newStateStack() *stateStack {
	return &stateStack{cur: newGraphicsState()}
}

// save pushes the current state (q)
func (s *stateStack) save() {
	s.saved = append(s.saved, s.cur)
}

// restore pops the last saved state (Q). An unbalanced Q is ignored;
// damaged streams carry them.
func (s *stateStack) restore() {
	if len(s.saved) == 0 {
		return
	}
	s.cur = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// concat prepends m to the CTM (cm)
func (s *stateStack) concat(m model.Matrix) {
	s.cur.ctm = m.Multiply(s.cur.ctm)
}

// beginText resets the text matrices (BT)
func (s *stateStack) beginText() {
	s.cur.text.matrix = model.Identity()
	s.cur.text.lineMatrix = model.Identity()
}

// setTextMatrix sets both text matrices (Tm)
func (s *stateStack) setTextMatrix(m model.Matrix) {
	s.cur.text.matrix = m
	s.cur.text.lineMatrix = m
}

// moveText starts a new line offset from the current line start (Td)
func (s *stateStack) moveText(tx, ty float64) {
	m := model.Translate(tx, ty).Multiply(s.cur.text.lineMatrix)
	s.cur.text.matrix = m
	s.cur.text.lineMatrix = m
}

// nextLine moves to the start of the next line using the leading (T*)
func (s *stateStack) nextLine() {
	s.moveText(0, -s.cur.text.leading)
}

// advance moves the text matrix along the baseline by tx text-space units
func (s *stateStack) advance(tx float64) {
	s.cur.text.matrix = model.Translate(tx, 0).Multiply(s.cur.text.matrix)
}

// renderMatrix maps text space to device space: Tm × CTM
func (s *stateStack) renderMatrix() model.Matrix {
	return s.cur.text.matrix.Multiply(s.cur.ctm)
}

// effectiveSize is the font size after text and graphics scaling
func (s *stateStack) effectiveSize() float64 {
	return s.cur.text.size * s.renderMatrix().VerticalScale()
}
