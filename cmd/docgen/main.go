// Command docgen renders a document form payload to a PDF file.
//
// Usage:
//
//	docgen -kind invoice -in invoice.json -out ./pdfs
//	cat offer.json | docgen -kind offer -preview
//
// The file is named after the document, e.g. Invoice_Globex_Corp_INV-42.pdf.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/lvillar/docgen"
	"github.com/lvillar/docgen/doctpl"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stderr io.Writer) error {
	fs := flag.NewFlagSet("docgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var kinds []string
	for _, k := range doctpl.Kinds() {
		kinds = append(kinds, string(k))
	}
	kind := fs.String("kind", "", "document kind: "+strings.Join(kinds, ", "))
	in := fs.String("in", "-", "payload JSON file, - for stdin")
	out := fs.String("out", ".", "output directory")
	preview := fs.Bool("preview", false, "generate a watermarked preview")
	watermark := fs.String("watermark", "PREVIEW", "preview watermark text")
	letterhead := fs.String("letterhead", "", "PDF whose first page is drawn beneath every page")
	fontDir := fs.String("font-dir", "", "directory of the UTF-8 font files")
	fontFamily := fs.String("font", "", "UTF-8 font family name; requires -font-regular")
	fontRegular := fs.String("font-regular", "", "regular TTF file")
	fontBold := fs.String("font-bold", "", "bold TTF file")
	fontItalic := fs.String("font-italic", "", "italic TTF file")
	fontBoldItalic := fs.String("font-bold-italic", "", "bold italic TTF file")
	uncompressed := fs.Bool("uncompressed", false, "write uncompressed content streams")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kind == "" {
		fs.Usage()
		return fmt.Errorf("-kind is required")
	}

	data, err := readPayload(*in, stdin)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if *verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync()
	}

	gen := docgen.New(
		docgen.WithLogger(logger),
		docgen.WithPreviewWatermark(*watermark),
		docgen.WithLetterhead(*letterhead),
		docgen.WithFontDir(*fontDir),
		docgen.WithUnicodeFont(*fontFamily, *fontRegular, *fontBold, *fontItalic, *fontBoldItalic),
		docgen.WithCompression(!*uncompressed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := gen.GenerateFile(ctx, *out, docgen.Request{Kind: *kind, Data: data, Preview: *preview})
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %s (%d pages)\n", res.Path, res.Pages)
	return nil
}

func readPayload(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	return data, nil
}
