package schedule

import (
	_ "embed"
)

//go:embed sample.csv
var sample []byte

// Sample returns the bundled example schedule used to scaffold new installs.
func Sample() []byte {
	out := make([]byte, len(sample))
	copy(out, sample)
	return out
}
