// Package objstore implements the content-addressed object store: a
// directory that maps a 40-hex digest to a deflated blob on disk.
// Put is write-once and idempotent; PutRaw (used for the commit graph
// blob) overwrites in place. The store never deletes an object.
package objstore

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// filePerm is the owner/group-read permission used for object blobs.
const filePerm = 0o640
const dirPerm = 0o750

// Store is a handle to the object directory rooted at objectsDir.
type Store struct {
	objectsDir string
}

// New returns a Store rooted at objectsDir. The directory is created
// lazily on first write.
func New(objectsDir string) *Store {
	return &Store{objectsDir: objectsDir}
}

// Has reports whether an object with the given digest already exists.
func (s *Store) Has(digest string) bool {
	_, file := codec.FanOutPath(s.objectsDir, digest)
	_, err := os.Stat(file)
	return err == nil
}

// Put stores raw (uncompressed) bytes under digest, deflating them
// first. If an object already exists at that digest the write is a
// no-op (write-once semantics).
func (s *Store) Put(digest string, raw []byte) error {
	dir, file := codec.FanOutPath(s.objectsDir, digest)
	if _, err := os.Stat(file); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: stat object")
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: create object dir")
	}

	compressed, err := codec.Compress(raw)
	if err != nil {
		return jiterr.Wrap(jiterr.CodecFailure, err, "objstore: compress object")
	}

	if err := os.WriteFile(file, compressed, filePerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: write object")
	}
	return nil
}

// PutRaw writes already-encoded bytes verbatim at digest, overwriting
// any previous content. Unlike Put this is not write-once and does not
// compress: it exists for objects that carry their own framing and
// compression, namely the commit graph blob, which is rewritten on
// every commit rather than written once immutably.
func (s *Store) PutRaw(digest string, data []byte) error {
	dir, file := codec.FanOutPath(s.objectsDir, digest)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: create object dir")
	}
	if err := os.WriteFile(file, data, filePerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: write raw object")
	}
	return nil
}

// GetRaw reads the bytes stored at digest without decompressing them,
// the counterpart to PutRaw.
func (s *Store) GetRaw(digest string) ([]byte, error) {
	_, file := codec.FanOutPath(s.objectsDir, digest)
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jiterr.Newf(jiterr.NotFound, "objstore: object %s not found", digest)
		}
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "objstore: read raw object")
	}
	return data, nil
}

// PutFile reads sourcePath and stores it under digest, exactly as Put
// would for its bytes.
func (s *Store) PutFile(sourcePath, digest string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: read source file")
	}
	return s.Put(digest, data)
}

// Get reads and decompresses the object at digest.
func (s *Store) Get(digest string) ([]byte, error) {
	_, file := codec.FanOutPath(s.objectsDir, digest)
	compressed, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, jiterr.Newf(jiterr.NotFound, "objstore: object %s not found", digest)
		}
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "objstore: read object")
	}
	raw, err := codec.Decompress(compressed)
	if err != nil {
		return nil, jiterr.Wrap(jiterr.CodecFailure, err, "objstore: decompress object")
	}
	return raw, nil
}

// GetText reads an object and splits it into lines, discarding line
// terminators but preserving empty lines between content.
func (s *Store) GetText(digest string) ([]string, error) {
	raw, err := s.Get(digest)
	if err != nil {
		return nil, err
	}
	return SplitLines(raw), nil
}

// SplitLines splits raw bytes into lines on \n, tolerating a trailing
// \r (CRLF) per line, and drops a single trailing empty line produced
// by a final newline (so that "a\nb\n" yields ["a","b"], not
// ["a","b",""]).
func SplitLines(raw []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines
}

// ObjectPath exposes the on-disk path for a digest, mainly for clone and
// debugging tools that need to copy objects directly.
func (s *Store) ObjectPath(digest string) string {
	_, file := codec.FanOutPath(s.objectsDir, digest)
	return file
}

// Root returns the objects directory this store is rooted at.
func (s *Store) Root() string { return s.objectsDir }

// CopyTo copies the object at digest verbatim (whatever bytes happen to
// be on disk, compressed or not) from s into dst, exactly as the
// original clone implementation's copy_file does a literal file copy
// rather than a decompress/recompress round trip.
func (s *Store) CopyTo(dst *Store, digest string) error {
	_, srcFile := codec.FanOutPath(s.objectsDir, digest)
	data, err := os.ReadFile(srcFile)
	if err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: read object for clone")
	}
	dstDir, dstFile := codec.FanOutPath(dst.objectsDir, digest)
	if err := os.MkdirAll(dstDir, dirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: create clone object dir")
	}
	if err := os.WriteFile(dstFile, data, filePerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "objstore: write cloned object")
	}
	return nil
}
