package renderer

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpFillCircle
	OpStrokeCircle
	OpStrokePolygon
	OpRadialGradient
	OpGradientLine
	numOpKinds
)

var opNames = [numOpKinds]string{
	"fill_rect", "fill_circle", "stroke_circle", "stroke_polygon", "radial_gradient", "gradient_line",
}

func (k OpKind) String() string {
	if k < 0 || k >= numOpKinds {
		return "unknown"
	}
	return opNames[k]
}

// Op is one recorded drawing call. Fields not used by the kind are zero.
type Op struct {
	Kind           OpKind
	X1, Y1, X2, Y2 float64
	W, H           float64
	Radius         float64
	Width          float64
	Color          Color
	Stops          []Stop
	Points         []Point
}

// RecordingCanvas is an in-memory Canvas. It always counts calls per kind
// and, when Record is set, keeps a copy of every call.
type RecordingCanvas struct {
	Width, Height float64
	Record        bool

	Ops    []Op
	counts [numOpKinds]int
}

// NewRecordingCanvas creates a canvas of the given size.
func NewRecordingCanvas(w, h float64, record bool) *RecordingCanvas {
	return &RecordingCanvas{Width: w, Height: h, Record: record}
}

// Resize changes the reported size.
func (c *RecordingCanvas) Resize(w, h float64) {
	c.Width, c.Height = w, h
}

// Reset clears recorded calls and counters.
func (c *RecordingCanvas) Reset() {
	c.Ops = c.Ops[:0]
	c.counts = [numOpKinds]int{}
}

// Count returns how many calls of kind k were made since the last Reset.
func (c *RecordingCanvas) Count(k OpKind) int {
	return c.counts[k]
}

// Total returns the number of calls since the last Reset.
func (c *RecordingCanvas) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// OpsOf returns recorded calls of kind k.
func (c *RecordingCanvas) OpsOf(k OpKind) []Op {
	var out []Op
	for _, op := range c.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}

func (c *RecordingCanvas) add(op Op) {
	c.counts[op.Kind]++
	if c.Record {
		c.Ops = append(c.Ops, op)
	}
}

func (c *RecordingCanvas) Size() (w, h float64) { return c.Width, c.Height }

func (c *RecordingCanvas) FillRect(x, y, w, h float64, col Color) {
	c.add(Op{Kind: OpFillRect, X1: x, Y1: y, W: w, H: h, Color: col})
}

func (c *RecordingCanvas) FillCircle(cx, cy, r float64, col Color) {
	c.add(Op{Kind: OpFillCircle, X1: cx, Y1: cy, Radius: r, Color: col})
}

func (c *RecordingCanvas) StrokeCircle(cx, cy, r, width float64, col Color) {
	c.add(Op{Kind: OpStrokeCircle, X1: cx, Y1: cy, Radius: r, Width: width, Color: col})
}

func (c *RecordingCanvas) StrokePolygon(points []Point, width float64, col Color) {
	op := Op{Kind: OpStrokePolygon, Width: width, Color: col}
	if c.Record {
		op.Points = append([]Point(nil), points...)
	}
	c.add(op)
}

func (c *RecordingCanvas) RadialGradient(cx, cy, r float64, stops []Stop) {
	op := Op{Kind: OpRadialGradient, X1: cx, Y1: cy, Radius: r}
	if c.Record {
		op.Stops = append([]Stop(nil), stops...)
	}
	c.add(op)
}

func (c *RecordingCanvas) GradientLine(x1, y1, x2, y2, width float64, stops []Stop) {
	op := Op{Kind: OpGradientLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width}
	if c.Record {
		op.Stops = append([]Stop(nil), stops...)
	}
	c.add(op)
}
