// Package ingest accepts a single plain-text document for the session.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrUnsupportedType is returned for any declared type other than text/plain.
var ErrUnsupportedType = errors.New("only plain text files are accepted")

// File is a file reference from a drop or picker selection.
type File interface {
	Name() string
	// Type is the declared content type.
	Type() string
	Open() (io.ReadCloser, error)
}

// Ingestor validates and reads one file at a time and hands the content to
// its callback. The callback owner keeps the file; the ingestor only
// remembers the name for rendering.
type Ingestor struct {
	onFile func(content, filename string)

	mu       sync.Mutex
	hovering bool
	lastName string
}

func New(onFile func(content, filename string)) *Ingestor {
	return &Ingestor{onFile: onFile}
}

func (in *Ingestor) DragEnter() { in.setHover(true) }
func (in *Ingestor) DragLeave() { in.setHover(false) }

func (in *Ingestor) Hovering() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.hovering
}

// LastFilename is the most recently accepted file name, if any.
func (in *Ingestor) LastFilename() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.lastName
}

// Drop handles a drag-and-drop; only the first file is considered.
func (in *Ingestor) Drop(ctx context.Context, files []File) error {
	in.setHover(false)
	if len(files) == 0 {
		return nil
	}
	return in.Select(ctx, files[0])
}

// Select handles a picker selection.
func (in *Ingestor) Select(ctx context.Context, f File) error {
	if f == nil {
		return nil
	}
	if !IsPlainText(f.Type()) {
		log.Warn().Str("module", "app.ingest").Str("file", f.Name()).Str("type", f.Type()).Msg("rejected file")
		return fmt.Errorf("%w: got %q", ErrUnsupportedType, f.Type())
	}
	content, err := readAll(ctx, f)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Name(), err)
	}

	in.mu.Lock()
	in.lastName = f.Name()
	in.mu.Unlock()

	log.Info().Str("module", "app.ingest").Str("file", f.Name()).Int("bytes", len(content)).Msg("file accepted")
	if in.onFile != nil {
		in.onFile(content, f.Name())
	}
	return nil
}

func (in *Ingestor) setHover(v bool) {
	in.mu.Lock()
	in.hovering = v
	in.mu.Unlock()
}

// IsPlainText reports whether a declared content type is text/plain,
// parameters such as charset aside.
func IsPlainText(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/plain"
}

func readAll(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return string(b), nil
}
