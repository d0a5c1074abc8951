package scan

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/depchecker/pkg/errors"
)

// DefaultSourceSize is the number of files a Source keeps in memory.
const DefaultSourceSize = 1024

// Source reads files through an LRU cache. Several scanners look at the
// same .py files during one run.
type Source struct {
	files *lru.Cache[string, []byte]
}

// NewSource creates a reader caching up to size files.
func NewSource(size int) *Source {
	if size <= 0 {
		size = DefaultSourceSize
	}
	files, err := lru.New[string, []byte](size)
	if err != nil {
		// Only reachable with a non-positive size.
		panic(err)
	}
	return &Source{files: files}
}

// Read returns the content of path. A nil Source reads straight from disk.
func (s *Source) Read(path string) ([]byte, error) {
	if s == nil {
		return os.ReadFile(path)
	}
	if data, ok := s.files.Get(path); ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.files.Add(path, data)
	return data, nil
}

// Len returns the number of cached files.
func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return s.files.Len()
}

// readUnit reads the file behind u, mapping failures to coded errors.
func readUnit(src *Source, u Unit) ([]byte, error) {
	data, err := src.Read(u.Path)
	if err == nil {
		return data, nil
	}
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", u.Path)
	}
	return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", u.Path)
}
