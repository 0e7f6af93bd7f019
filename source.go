package pak

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ByteSource provides random access to a package file.
//
// Implementations must allow concurrent ReadAt calls.
// SourceID must return a stable identifier for the underlying content.
type ByteSource interface {
	io.ReaderAt
	Size() int64
	SourceID() string
}

// SourceOpener opens the package file at path.
type SourceOpener func(path string) (ByteSource, error)

// FileSource wraps a read-only *os.File to implement ByteSource.
// os.File has ReadAt but not Size, so the size is cached at open.
type FileSource struct {
	file     *os.File
	size     int64
	sourceID string
}

// OpenFile opens a package file read-only.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat package: %w", err)
	}
	return &FileSource{file: f, size: info.Size(), sourceID: fileSourceID(path, info)}, nil
}

// ReadAt implements io.ReaderAt.
func (fs *FileSource) ReadAt(p []byte, off int64) (int, error) {
	return fs.file.ReadAt(p, off)
}

// Size returns the total size of the file.
func (fs *FileSource) Size() int64 {
	return fs.size
}

// SourceID returns a stable identifier for the file content.
func (fs *FileSource) SourceID() string {
	return fs.sourceID
}

// Close closes the underlying file.
func (fs *FileSource) Close() error {
	return fs.file.Close()
}

func fileSourceID(path string, info os.FileInfo) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	return fmt.Sprintf("file:%s:%d:%d", absPath, info.Size(), info.ModTime().UnixNano())
}

func openFileSource(path string) (ByteSource, error) {
	return OpenFile(path)
}
