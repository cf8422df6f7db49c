package codec

import "path/filepath"

// FanOutPath splits a 40-hex digest into the two-path-segment layout the
// object store uses on disk: the first two hex characters become a
// directory name, the remaining 38 the file name within it.
func FanOutPath(objectsDir, digest string) (dir, file string) {
	dir = filepath.Join(objectsDir, digest[:2])
	file = filepath.Join(dir, digest[2:])
	return dir, file
}
