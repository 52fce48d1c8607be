package loader

import (
	"fmt"

	"github.com/jvmkit/jvmkit/pkg/classfile"
)

// Load opens src and decodes it with classfile.FromReader, closing the
// underlying reader regardless of outcome.
func Load(src Source) (*classfile.Class, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("loader: opening %s: %w", src.Name, err)
	}
	defer rc.Close()

	cls, err := classfile.FromReader(rc)
	if err != nil {
		return nil, fmt.Errorf("loader: decoding %s: %w", src.Name, err)
	}
	return cls, nil
}
