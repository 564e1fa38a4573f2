// Package hash computes xxHash64 content digests, used to fingerprint whole
// PLY files for the info command and for round-trip checks.
package hash

import (
	"io"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of a byte slice.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SumReader computes the xxHash64 of everything remaining in r.
func SumReader(r io.Reader) (uint64, error) {
	d := xxhash.New()
	if _, err := io.Copy(d, r); err != nil {
		return 0, err
	}

	return d.Sum64(), nil
}
