package render

// Defaults used when no option overrides them.
const (
	DefaultWidth    = 360.0
	DefaultSpacing  = 8.0
	DefaultFontSize = 12.0
)

// Option configures a renderer.
type Option func(*renderer)

type renderer struct {
	width    float64
	spacing  float64
	fontSize float64
}

// WithWidth sets the document width. Non-positive values are ignored.
func WithWidth(w float64) Option {
	return func(r *renderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// WithSpacing sets the gap between chips and between wrapped lines.
// Negative values are ignored.
func WithSpacing(s float64) Option {
	return func(r *renderer) {
		if s >= 0 {
			r.spacing = s
		}
	}
}

// WithFontSize sets the base font size. Non-positive values are ignored.
func WithFontSize(size float64) Option {
	return func(r *renderer) {
		if size > 0 {
			r.fontSize = size
		}
	}
}

func newRenderer(opts ...Option) renderer {
	r := renderer{width: DefaultWidth, spacing: DefaultSpacing, fontSize: DefaultFontSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) padding() float64 { return r.fontSize * 4 / 3 }

func (r renderer) lineHeight() float64 { return r.fontSize * 1.4 }
