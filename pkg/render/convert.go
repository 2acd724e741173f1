package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

const rsvgConvert = "rsvg-convert"

// ToPDF converts an SVG document to PDF with librsvg's rsvg-convert, which
// must be on PATH (apt install librsvg2-bin, brew install librsvg).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, apperr.New(apperr.ErrCodeUnsupported, "pdf output needs %s from librsvg on PATH", rsvgConvert)
	}

	var out, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout, cmd.Stderr = &out, &stderr
	if err := cmd.Run(); err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInternal, err, "%s: %s", rsvgConvert, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
