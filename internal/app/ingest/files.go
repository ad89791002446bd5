package ingest

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MemFile is a file whose content already arrived in a message.
type MemFile struct {
	FileName    string
	ContentType string
	Content     string
}

func (m MemFile) Name() string { return m.FileName }
func (m MemFile) Type() string { return m.ContentType }
func (m MemFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.Content)), nil
}

// FormFile adapts a multipart upload part; Type is the part's declared
// Content-Type header.
type FormFile struct {
	Header *multipart.FileHeader
}

func (f FormFile) Name() string { return f.Header.Filename }
func (f FormFile) Type() string { return f.Header.Header.Get("Content-Type") }
func (f FormFile) Open() (io.ReadCloser, error) {
	return f.Header.Open()
}

// LocalFile is a file on disk. A local path declares no type, so it is
// sniffed from the content.
type LocalFile struct {
	Path string
	kind string
}

func NewLocalFile(path string) (*LocalFile, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, err
	}
	return &LocalFile{Path: path, kind: mt.String()}, nil
}

func (l *LocalFile) Name() string { return filepath.Base(l.Path) }
func (l *LocalFile) Type() string { return l.kind }
func (l *LocalFile) Open() (io.ReadCloser, error) {
	return os.Open(l.Path)
}
