package pet

// Emphasis is the transient visual a sprite shows after a user trigger.
type Emphasis int

const (
	EmphasisNone Emphasis = iota
	// EmphasisPop is the bounce and glow applied the moment a user triggers.
	EmphasisPop
	// EmphasisActive adds the per-animation highlight shortly after.
	EmphasisActive
)

// Sprite is the image-bearing rendering handle.
type Sprite interface {
	SetFrame(path string)
	// Width reports the rendered width; ok is false when it cannot be measured.
	Width() (w float64, ok bool)
	SetLoading(loading bool)
	SetDegraded(degraded bool)
	SetEmphasis(e Emphasis, animation string)
}

// Body is the movable container holding the sprite.
type Body interface {
	SetPosition(x float64)
	SetFacingLeft(left bool)
}

// Track is the region a pet walks in.
type Track interface {
	Width() (w float64, ok bool)
}

// Highlighter marks one trigger button active. An empty name clears them all.
type Highlighter interface {
	Highlight(active string)
}

// Handles groups the rendering collaborators of one pet. Nil members are
// replaced by no-ops; geometry then falls back to nominal widths.
type Handles struct {
	Sprite  Sprite
	Body    Body
	Track   Track
	Buttons Highlighter
}

type (
	nopSprite      struct{}
	nopBody        struct{}
	nopTrack       struct{}
	nopHighlighter struct{}
)

func (nopSprite) SetFrame(string)              {}
func (nopSprite) Width() (float64, bool)       { return 0, false }
func (nopSprite) SetLoading(bool)              {}
func (nopSprite) SetDegraded(bool)             {}
func (nopSprite) SetEmphasis(Emphasis, string) {}

func (nopBody) SetPosition(float64) {}
func (nopBody) SetFacingLeft(bool)  {}

func (nopTrack) Width() (float64, bool) { return 0, false }

func (nopHighlighter) Highlight(string) {}

func (h Handles) withDefaults() Handles {
	if h.Sprite == nil {
		h.Sprite = nopSprite{}
	}
	if h.Body == nil {
		h.Body = nopBody{}
	}
	if h.Track == nil {
		h.Track = nopTrack{}
	}
	if h.Buttons == nil {
		h.Buttons = nopHighlighter{}
	}
	return h
}
