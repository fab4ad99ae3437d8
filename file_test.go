package bytetape

import (
	"os"
	"path/filepath"
	"testing"

	"bytetape/internal/errors"
)

// OpenFileForTest materializes contents in a temp file and maps it
func OpenFileForTest(t *testing.T, contents []byte) (*File, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.bin")
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return OpenFile(path)
}

// ===== Mapped File Tests =====

func TestOpenFile(t *testing.T) {
	f, err := OpenFileForTest(t, []byte("mapped bytes"))
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()
	if f.Len() != 12 {
		t.Errorf("Len = %d, want 12", f.Len())
	}
	view := f.Str()
	defer view.Release()
	if view.String() != "mapped bytes" {
		t.Errorf("mapped view = %q", view.String())
	}
	if got := view.Find([]byte("bytes")); got != 7 {
		t.Errorf("Find over mapping = %d, want 7", got)
	}
}

func TestOpenFileEmpty(t *testing.T) {
	f, err := OpenFileForTest(t, nil)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()
	if f.Len() != 0 {
		t.Errorf("Len = %d, want 0", f.Len())
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "no-such-file"))
	if !errors.IsKind(err, errors.OsError) {
		t.Errorf("missing file returned %v, want OsError", err)
	}
}

// ===== Write-To Tests =====

func TestWriteTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	if err := mustStr(t, "persisted").WriteTo(path); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	back, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(back) != "persisted" {
		t.Errorf("file holds %q", back)
	}
}

func TestWriteToBadPath(t *testing.T) {
	err := mustStr(t, "x").WriteTo(filepath.Join(t.TempDir(), "missing", "dir", "out"))
	if !errors.IsKind(err, errors.OsError) {
		t.Errorf("bad path returned %v, want OsError", err)
	}
}

// Views over a mapping survive constructing collections from them
func TestSplitOverMappedFile(t *testing.T) {
	f, err := OpenFileForTest(t, []byte("one\ntwo\nthree"))
	if err != nil {
		t.Fatalf("fixture failed: %v", err)
	}
	view := f.Str()
	lines, err := SplitLines(view, false)
	if err != nil {
		t.Fatalf("SplitLines failed: %v", err)
	}
	view.Release()
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// the collection keeps the mapping referenced
	assertItems(t, lines, []string{"one", "two", "three"})
	lines.Release()
}
