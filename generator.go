// Package docgen generates business documents (offer letters, certificates,
// memoranda of understanding and invoices) as paginated PDFs from submitted
// form payloads.
//
// A Generator decodes and validates the JSON payload of a document kind, records
// final submissions through a Recorder, lays the document out on A4 pages and
// draws it with gofpdf:
//
//	gen := docgen.New(docgen.WithLogger(logger), docgen.WithPreviewWatermark("PREVIEW"))
//	res, err := gen.Generate(ctx, docgen.Request{Kind: "invoice", Data: payload})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.FileName, res.Data, 0o644)
package docgen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lvillar/docgen/doctpl"
	"github.com/lvillar/docgen/layout"
	"github.com/lvillar/docgen/render"
)

// Request is one generation request.
type Request struct {
	Kind string
	Data []byte
	// Preview produces the document without recording it.
	Preview        bool
	OrganizationID string
	UserID         string
}

// Result is a generated document.
type Result struct {
	Kind     doctpl.Kind
	Title    string
	FileName string
	Pages    int
	Data     []byte
	Preview  bool
	// Path is set by GenerateFile.
	Path string
}

// Generator turns requests into PDFs. It holds only configuration and is safe
// for concurrent use.
type Generator struct {
	cfg config
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	cfg := config{
		log:      zap.NewNop(),
		now:      time.Now,
		compress: true,
		creator:  "docgen",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Generator{cfg: cfg}
}

// Generate validates req, records it unless it is a preview, and renders it.
// A recorder failure aborts generation.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	kind, err := doctpl.ParseKind(req.Kind)
	if err != nil {
		return nil, &DocError{Op: "parse", Kind: req.Kind, Err: err}
	}
	tpl, err := doctpl.Decode(kind, req.Data)
	if err != nil {
		return nil, newDocError("decode", kind, fmt.Errorf("%w: %w", ErrInvalidPayload, err))
	}
	if err := tpl.Validate(); err != nil {
		return nil, newDocError("validate", kind, fmt.Errorf("%w: %w", ErrInvalidPayload, err))
	}

	now := g.cfg.now()
	log := g.cfg.log.With(zap.String("kind", string(kind)), zap.Bool("preview", req.Preview))

	if !req.Preview && g.cfg.recorder != nil {
		data, err := submissionData(tpl, req.Data)
		if err != nil {
			return nil, newDocError("record", kind, fmt.Errorf("%w: %w", ErrRecord, err))
		}
		sub := Submission{
			Kind:           string(kind),
			Title:          tpl.Title(),
			Data:           data,
			OrganizationID: req.OrganizationID,
			UserID:         req.UserID,
			CreatedAt:      now,
		}
		if err := g.cfg.recorder.Record(ctx, sub); err != nil {
			log.Error("recording submission", zap.Error(err))
			return nil, newDocError("record", kind, fmt.Errorf("%w: %w", ErrRecord, err))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, newDocError("render", kind, err)
	}

	bc := doctpl.BuildContext{Now: now}
	if g.cfg.unicode != nil {
		bc.Sans, bc.Serif = g.cfg.unicode.Family, g.cfg.unicode.Family
	}
	doc := doctpl.NewDocument(tpl, bc)

	r := render.New(g.renderOptions(doc, req.Preview, log)...)
	pages := layout.Layout(doc.Blocks, doc.Geometry, r,
		layout.WithLogger(log), layout.WithBackground(doc.Background...))
	if err := r.Draw(pages, doc.Geometry); err != nil {
		return nil, newDocError("render", kind, fmt.Errorf("%w: %w", ErrRender, err))
	}
	data, err := r.Bytes()
	if err != nil {
		return nil, newDocError("render", kind, fmt.Errorf("%w: %w", ErrRender, err))
	}

	log.Info("document generated",
		zap.String("file", doc.FileName), zap.Int("pages", len(pages)), zap.Int("bytes", len(data)))
	return &Result{
		Kind:     kind,
		Title:    doc.Title,
		FileName: doc.FileName,
		Pages:    len(pages),
		Data:     data,
		Preview:  req.Preview,
	}, nil
}

func (g *Generator) renderOptions(doc *doctpl.Document, preview bool, log *zap.Logger) []render.Option {
	opts := []render.Option{
		render.WithLogger(log),
		render.WithTitle(doc.Title),
		render.WithCreator(g.cfg.creator),
		render.WithCompression(g.cfg.compress),
		render.WithLandscape(doc.Geometry.Landscape),
	}
	if g.cfg.fontDir != "" {
		opts = append(opts, render.WithFontDir(g.cfg.fontDir))
	}
	if g.cfg.unicode != nil {
		opts = append(opts, render.WithUnicodeFont(*g.cfg.unicode))
	}
	if g.cfg.letterhead != "" {
		opts = append(opts, render.WithLetterhead(g.cfg.letterhead))
	}
	if preview && g.cfg.watermark != "" {
		opts = append(opts, render.WithWatermark(render.Watermark{Text: g.cfg.watermark}))
	}
	return opts
}

var pathSafe = strings.NewReplacer("/", "-", `\`, "-")

// GenerateFile generates req and writes it to dir under the result's file name.
func (g *Generator) GenerateFile(ctx context.Context, dir string, req Request) (*Result, error) {
	res, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, pathSafe.Replace(res.FileName))
	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return nil, newDocError("write", res.Kind, fmt.Errorf("docgen: writing %s: %w", path, err))
	}
	res.Path = path
	return res, nil
}
