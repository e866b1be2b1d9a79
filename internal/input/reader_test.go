package input

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestDefaultDelimiter(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"data.csv", ","},
		{"data.csv.gz", ","},
		{"data.csv.bz2", ","},
		{"data.tsv", "\t"},
		{"data.txt.gz", "\t"},
		{"", "\t"},
	}

	for _, tt := range tests {
		if got := DefaultDelimiter(tt.name); got != tt.want {
			t.Errorf("DefaultDelimiter(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestOpenPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if src.Name != path {
		t.Errorf("Name = %q, want %q", src.Name, path)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "a\tb\n" {
		t.Errorf("content = %q, want %q", data, "a\tb\n")
	}
}

func TestOpenGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte("x,y\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "x,y\n" {
		t.Errorf("content = %q, want %q", data, "x,y\n")
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.tsv"))
	if err == nil {
		t.Fatal("Open succeeded on a missing file")
	}
}

func TestCloseConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Aborting a load closes the source from a goroutine while the
	// command's deferred close runs; both callers must get the same
	// answer and the file must be closed exactly once.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = src.Close()
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Close %d: %v", i, err)
		}
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close after close: %v", err)
	}
}

func TestOpenStdin(t *testing.T) {
	src, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if src.Name != "(stdin)" {
		t.Errorf("Name = %q, want %q", src.Name, "(stdin)")
	}
	// Stdin carries no closers; Close must be a no-op.
	if err := src.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
