// Package document streams rendered sections to an output backend. The
// assembler is append-only and order-preserving; it performs no computation
// of its own and can only fail on backend I/O.
package document

import (
	"fmt"

	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/chart"
	"github.com/aws-samples/amazon-transcribe-output-word-document/internal/render"
)

// Backend receives the document content block by block.
type Backend interface {
	BeginSection(title string) error
	Paragraph(text string) error
	Notice(text string) error
	Table(header []string, rows [][]string) error
	Chart(c *chart.Chart) error
	Transcript(turn *render.Turn) error
	Close() error
}

// RenderError wraps a backend failure with the section being written when
// it happened.
type RenderError struct {
	Section string
	Err     error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render section %q: %v", e.Section, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Assemble streams the sections to the backend in the given order and
// closes it. The first backend error aborts assembly.
func Assemble(backend Backend, sections []render.Section) error {
	for _, sec := range sections {
		if err := writeSection(backend, sec); err != nil {
			return err
		}
	}
	if err := backend.Close(); err != nil {
		return &RenderError{Section: "close", Err: err}
	}
	return nil
}

func writeSection(backend Backend, sec render.Section) error {
	fail := func(err error) error {
		if err == nil {
			return nil
		}
		return &RenderError{Section: sec.Title, Err: err}
	}

	if err := fail(backend.BeginSection(sec.Title)); err != nil {
		return err
	}
	for _, b := range sec.Blocks {
		var err error
		switch b.Kind {
		case render.BlockParagraph:
			err = backend.Paragraph(b.Text)
		case render.BlockNotice:
			err = backend.Notice(b.Text)
		case render.BlockTable:
			err = backend.Table(b.Header, b.Rows)
		case render.BlockChart:
			err = backend.Chart(b.Chart)
		case render.BlockTranscript:
			err = backend.Transcript(b.Turn)
		}
		if err := fail(err); err != nil {
			return err
		}
	}
	return nil
}
