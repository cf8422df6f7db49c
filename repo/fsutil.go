package repo

import "os"

// readFileOrEmpty reads path, treating a missing file as empty content
// rather than an error — used where a path legitimately may not exist
// on one side of a comparison (a deleted file diffed against its last
// committed blob).
func readFileOrEmpty(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}
