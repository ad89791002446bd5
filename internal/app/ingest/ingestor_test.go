package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

type call struct{ content, filename string }

func recorder() (*[]call, func(string, string)) {
	var calls []call
	return &calls, func(content, filename string) {
		calls = append(calls, call{content, filename})
	}
}

func TestSelect_PlainTextInvokesCallbackOnce(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)

	err := in.Select(context.Background(), MemFile{FileName: "notes.txt", ContentType: "text/plain", Content: "hello\nworld"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("callback calls=%d", len(*calls))
	}
	if got := (*calls)[0]; got.content != "hello\nworld" || got.filename != "notes.txt" {
		t.Fatalf("callback got %+v", got)
	}
	if in.LastFilename() != "notes.txt" {
		t.Fatalf("last=%q", in.LastFilename())
	}
}

func TestSelect_CharsetParameterAccepted(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)
	if err := in.Select(context.Background(), MemFile{FileName: "a.txt", ContentType: "text/plain; charset=utf-8", Content: "x"}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(*calls) != 1 {
		t.Fatalf("calls=%d", len(*calls))
	}
}

func TestSelect_RejectsOtherTypesKeepsState(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)
	if err := in.Select(context.Background(), MemFile{FileName: "first.txt", ContentType: "text/plain", Content: "ok"}); err != nil {
		t.Fatal(err)
	}

	for _, ct := range []string{"application/pdf", "text/markdown", "text/html", "", "image/png"} {
		err := in.Select(context.Background(), MemFile{FileName: "bad", ContentType: ct, Content: "nope"})
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("type %q: err=%v", ct, err)
		}
	}
	if len(*calls) != 1 {
		t.Fatalf("callback calls=%d", len(*calls))
	}
	if in.LastFilename() != "first.txt" {
		t.Fatalf("last=%q", in.LastFilename())
	}
}

type failingFile struct{ MemFile }

func (failingFile) Open() (io.ReadCloser, error) { return nil, errors.New("disk gone") }

func TestSelect_ReadFailureNoCallback(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)
	err := in.Select(context.Background(), failingFile{MemFile{FileName: "x.txt", ContentType: "text/plain"}})
	if err == nil || errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err=%v", err)
	}
	if len(*calls) != 0 || in.LastFilename() != "" {
		t.Fatalf("state changed after failed read")
	}
}

func TestDrop_HoverAndFirstFileOnly(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)

	in.DragEnter()
	if !in.Hovering() {
		t.Fatal("expected hover after DragEnter")
	}
	in.DragLeave()
	if in.Hovering() {
		t.Fatal("expected no hover after DragLeave")
	}

	in.DragEnter()
	err := in.Drop(context.Background(), []File{
		MemFile{FileName: "one.txt", ContentType: "text/plain", Content: "1"},
		MemFile{FileName: "two.txt", ContentType: "text/plain", Content: "2"},
	})
	if err != nil {
		t.Fatalf("Drop: %v", err)
	}
	if in.Hovering() {
		t.Fatal("drop must clear hover")
	}
	if len(*calls) != 1 || (*calls)[0].filename != "one.txt" {
		t.Fatalf("calls=%+v", *calls)
	}

	if err := in.Drop(context.Background(), nil); err != nil {
		t.Fatalf("empty drop: %v", err)
	}
}

func TestSelect_ReplacesPrevious(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)
	_ = in.Select(context.Background(), MemFile{FileName: "a.txt", ContentType: "text/plain", Content: "a"})
	_ = in.Select(context.Background(), MemFile{FileName: "b.txt", ContentType: "text/plain", Content: "b"})
	if len(*calls) != 2 || (*calls)[1].content != "b" || in.LastFilename() != "b.txt" {
		t.Fatalf("calls=%+v last=%q", *calls, in.LastFilename())
	}
}

func TestSelect_CanceledContext(t *testing.T) {
	calls, cb := recorder()
	in := New(cb)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := in.Select(ctx, MemFile{FileName: "a.txt", ContentType: "text/plain", Content: "a"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if len(*calls) != 0 {
		t.Fatal("callback invoked after cancel")
	}
}

func TestLocalFile_SniffsType(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(txt, []byte("plain words for the agent\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	png := filepath.Join(dir, "pic.txt")
	if err := os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644); err != nil {
		t.Fatal(err)
	}

	lf, err := NewLocalFile(txt)
	if err != nil {
		t.Fatal(err)
	}
	if !IsPlainText(lf.Type()) || lf.Name() != "notes.txt" {
		t.Fatalf("name=%q type=%q", lf.Name(), lf.Type())
	}

	calls, cb := recorder()
	in := New(cb)
	if err := in.Select(context.Background(), lf); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if (*calls)[0].content != "plain words for the agent\n" {
		t.Fatalf("content=%q", (*calls)[0].content)
	}

	disguised, err := NewLocalFile(png)
	if err != nil {
		t.Fatal(err)
	}
	if err := in.Select(context.Background(), disguised); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("disguised png: err=%v", err)
	}
}
