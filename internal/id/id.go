// Package id creates identifiers for archived bundles.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// alphabet avoids characters that need quoting on a command line, since
// bundle IDs are typed into `lumina archive show <id>`.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const size = 10

// New returns a short random identifier such as "k3v9q0x2ma".
func New() (string, error) {
	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return id, nil
}
