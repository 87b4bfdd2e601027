package easel

import "errors"

// Persistence boundary. The core does not choose an encoding: upstream
// services serialize these records however they like (PNG, JSON, ...) and
// hand them back to reconstruct an equivalent document.

var (
	// ErrEmptyDocument is returned when a restore carries no layer records.
	ErrEmptyDocument = errors.New("easel: document has no layers")
	// ErrPixelSizeMismatch is returned when a record's pixel payload does
	// not match its declared dimensions.
	ErrPixelSizeMismatch = errors.New("easel: pixel data does not match declared dimensions")
)

// Manifest is the document-level persistence record.
type Manifest struct {
	ID        string
	Name      string
	Width     int
	Height    int
	DPI       float64
	ColorMode string
}

// LayerRecord is the per-layer persistence record. Pixels holds raw RGBA
// bytes (4 per pixel) or nil for layers without a raster payload.
type LayerRecord struct {
	ID          string
	Name        string
	Visible     bool
	Opacity     float64
	BlendMode   string
	Locked      bool
	IsMask      bool
	ParentID    string
	ContentType int
	Width       int
	Height      int
	Pixels      []byte
}

// Snapshot exports the document manifest and one record per layer of the
// active stack, in compositing order. Pixel bytes are copied, so later
// edits do not alias the snapshot.
func (d *Document) Snapshot() (Manifest, []LayerRecord) {
	m := Manifest{
		ID:        d.id,
		Name:      d.name,
		Width:     d.width,
		Height:    d.height,
		DPI:       d.dpi,
		ColorMode: d.colorMode.String(),
	}

	stack := d.Stack()
	records := make([]LayerRecord, 0, stack.Len())
	for _, l := range stack.Layers() {
		r := LayerRecord{
			ID:          l.ID(),
			Name:        l.Name,
			Visible:     l.Visible,
			Opacity:     l.Opacity(),
			BlendMode:   l.Mode.String(),
			Locked:      l.Locked,
			IsMask:      l.IsMask,
			ParentID:    l.ParentID,
			ContentType: int(l.ContentType),
		}
		if pm := l.Pixmap(); pm != nil {
			r.Width = pm.Width()
			r.Height = pm.Height()
			r.Pixels = make([]byte, len(pm.Data()))
			copy(r.Pixels, pm.Data())
		}
		records = append(records, r)
	}
	return m, records
}

// RestoreDocument reconstructs a document from a manifest and its layer
// records. Layer identities, weak parent references, and pixel payloads
// survive the round trip; history starts empty.
func RestoreDocument(m Manifest, records []LayerRecord, opts ...DocumentOption) (*Document, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDocument
	}

	base := []DocumentOption{
		WithName(m.Name),
		WithDPI(m.DPI),
		WithColorMode(ParseColorMode(m.ColorMode)),
	}
	d := NewDocument(m.Width, m.Height, append(base, opts...)...)
	if m.ID != "" {
		d.id = m.ID
	}

	layers := make([]*Layer, 0, len(records))
	for _, r := range records {
		l := NewLayer(r.Name)
		if r.ID != "" {
			l.id = r.ID
		}
		l.Visible = r.Visible
		l.SetOpacity(r.Opacity)
		l.Mode = ParseBlendMode(r.BlendMode)
		l.Locked = r.Locked
		l.IsMask = r.IsMask
		l.ParentID = r.ParentID
		l.ContentType = ContentType(r.ContentType)

		if r.Pixels != nil {
			if len(r.Pixels) != r.Width*r.Height*4 {
				return nil, ErrPixelSizeMismatch
			}
			pm := NewPixmap(r.Width, r.Height)
			copy(pm.data, r.Pixels)
			l.pixmap = pm
		}
		layers = append(layers, l)
	}

	d.stack.layers = layers
	d.stack.current = len(layers) - 1
	return d, nil
}
