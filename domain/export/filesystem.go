package export

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
)

// Filesystem is where crops are written.
type Filesystem interface {
	Exists(path string) bool
	// WriteImage encodes img as PNG at path and returns the bytes written.
	// It must fail with an error wrapping fs.ErrExist rather than overwrite.
	WriteImage(path string, img image.Image) (int64, error)
}

// OSFilesystem writes to the local disk, creating parent directories on
// demand.
type OSFilesystem struct{}

func (OSFilesystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (OSFilesystem) WriteImage(path string, img image.Image) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}
	w := bufio.NewWriter(f)
	err = imaging.Encode(w, img, imaging.PNG)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("encode png: %w", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// MemFilesystem keeps encoded files in memory.
type MemFilesystem struct {
	mu    sync.Mutex
	files map[string][]byte
	fail  map[string]error
}

// NewMemFilesystem returns an empty in-memory filesystem.
func NewMemFilesystem() *MemFilesystem {
	return &MemFilesystem{files: map[string][]byte{}, fail: map[string]error{}}
}

// Put seeds path with data, as if a file already existed there.
func (m *MemFilesystem) Put(path string, data []byte) {
	m.mu.Lock()
	m.files[path] = data
	m.mu.Unlock()
}

// FailOn makes the next writes to path return err.
func (m *MemFilesystem) FailOn(path string, err error) {
	m.mu.Lock()
	m.fail[path] = err
	m.mu.Unlock()
}

// Read returns the content stored at path.
func (m *MemFilesystem) Read(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.files[path]
	return b, ok
}

// Paths lists stored files in lexical order.
func (m *MemFilesystem) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (m *MemFilesystem) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}

func (m *MemFilesystem) WriteImage(path string, img image.Image) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.fail[path]; ok {
		return 0, err
	}
	if _, ok := m.files[path]; ok {
		return 0, &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return 0, fmt.Errorf("encode png: %w", err)
	}
	m.files[path] = buf.Bytes()
	return int64(buf.Len()), nil
}

var (
	_ Filesystem = OSFilesystem{}
	_ Filesystem = (*MemFilesystem)(nil)
)
