//go:build !unix

package bytetape

import (
	"os"
)

// mapFile falls back to reading the whole file into memory on
// platforms without a usable mmap
func mapFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, nil, nil
}
