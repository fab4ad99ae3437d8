package bytetape

import (
	"os"

	"bytetape/internal/errors"
)

// File is a read-only memory-mapped file usable as a view parent. The
// mapping stays alive while any derived view references it; Close
// drops the file's own reference.
type File struct {
	path   string
	data   []byte
	parent *Parent
}

// OpenFile maps path read-only
func OpenFile(path string) (*File, error) {
	data, release, err := mapFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.OsError, "file.open", path)
	}
	return &File{path: path, data: data, parent: newParent(data, release)}, nil
}

// Path returns the mapped file's path
func (f *File) Path() string {
	return f.path
}

// Len returns the mapped byte count
func (f *File) Len() int {
	return len(f.data)
}

// Bytes exposes the mapping; read-only
func (f *File) Bytes() []byte {
	return f.data
}

// Str wraps the whole mapping as a view
func (f *File) Str() *Str {
	return wrapBytes(f.data, f.parent.Retain())
}

// Close releases the file's reference on the mapping; the mapping is
// unmapped once the last derived view releases too
func (f *File) Close() error {
	f.parent.Release()
	f.parent = nil
	f.data = nil
	return nil
}

// WriteTo copies the view's bytes into a newly created file at path,
// replacing an existing file. Failures surface as OS errors; there are
// no temp-file semantics.
func (s *Str) WriteTo(path string) error {
	if err := os.WriteFile(path, s.data, 0o644); err != nil {
		return errors.Wrap(err, errors.OsError, "str.write_to", path)
	}
	return nil
}
