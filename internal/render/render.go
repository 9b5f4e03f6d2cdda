package render

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Page 1 is rendered at 3x the PDF base resolution of 72 DPI so the scorer
// gets a legible image.
const renderDPI = 3 * 72

// Document is one uploaded resume: raw bytes plus the declared filename.
type Document struct {
	FileName string
	Data     []byte
}

// RenderedImage is the result of rendering a document. Exactly one of
// {artifact, failure reason} is populated. An empty encode leaves both
// unset; callers must check HasArtifact rather than Err alone.
type RenderedImage struct {
	PreviewHandle string
	FileName      string
	Data          []byte
	Width         int
	Height        int
	Err           string
}

// HasArtifact reports whether rendering produced a binary image artifact.
func (r RenderedImage) HasArtifact() bool {
	return len(r.Data) > 0
}

// Renderer converts the first page of a PDF document into a PNG artifact.
// The underlying engine is probed at most once per process; concurrent
// first callers share the same in-flight probe.
type Renderer struct {
	handles *HandleRegistry

	probeOnce sync.Once
	probeErr  error
}

// New constructs a Renderer with its own preview handle registry.
func New() *Renderer {
	return &Renderer{handles: NewHandleRegistry()}
}

// Handles exposes the preview handle registry for serving and revoking
// rendered previews. Handles are not revoked by the renderer itself.
func (r *Renderer) Handles() *HandleRegistry {
	return r.handles
}

// Render rasterizes page 1 of the document and encodes it as PNG. It never
// panics past its boundary; any failure is reported on the result.
func (r *Renderer) Render(ctx context.Context, doc Document) (result RenderedImage) {
	defer func() {
		if rec := recover(); rec != nil {
			result = RenderedImage{Err: fmt.Sprintf("render panic: %v", rec)}
		}
	}()

	if err := r.engineReady(); err != nil {
		return RenderedImage{Err: err.Error()}
	}
	if err := ctx.Err(); err != nil {
		return RenderedImage{Err: err.Error()}
	}

	engine, err := fitz.NewFromMemory(doc.Data)
	if err != nil {
		return RenderedImage{Err: fmt.Sprintf("open document: %v", err)}
	}
	defer engine.Close()

	if engine.NumPage() == 0 {
		return RenderedImage{Err: "document has no pages"}
	}

	img, err := engine.ImageDPI(0, renderDPI)
	if err != nil {
		return RenderedImage{Err: fmt.Sprintf("render page 1: %v", err)}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return RenderedImage{Err: fmt.Sprintf("encode png: %v", err)}
	}
	if buf.Len() == 0 {
		// Not a hard failure; callers detect the missing artifact.
		return RenderedImage{}
	}

	bounds := img.Bounds()
	data := buf.Bytes()
	return RenderedImage{
		PreviewHandle: r.handles.Register(data),
		FileName:      DeriveImageName(doc.FileName),
		Data:          data,
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
	}
}

// engineReady performs the one-time engine probe. The cached result is
// shared by every caller, so a second call never repeats the setup.
func (r *Renderer) engineReady() error {
	r.probeOnce.Do(func() {
		probe, err := fitz.NewFromMemory(blankPDF())
		if err != nil {
			r.probeErr = fmt.Errorf("document rendering is not available: %w", err)
			return
		}
		probe.Close()
	})
	return r.probeErr
}

// DeriveImageName replaces a trailing .pdf extension (case-insensitive)
// with .png. Names without the extension get .png appended.
func DeriveImageName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return name[:len(name)-len(".pdf")] + ".png"
	}
	return name + ".png"
}

// blankPDF assembles a minimal one-page PDF with a computed xref table,
// used for the engine probe and in tests.
func blankPDF() []byte {
	objs := []string{
		"<</Type/Catalog/Pages 2 0 R>>",
		"<</Type/Pages/Kids[3 0 R]/Count 1>>",
		"<</Type/Page/Parent 2 0 R/MediaBox[0 0 612 792]>>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	start := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<</Size %d/Root 1 0 R>>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, start)
	return buf.Bytes()
}
