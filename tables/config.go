package tables

import (
	"fmt"

	"github.com/tsawler/manifest/normalize"
)

// DefaultPackageKeywords is the package-type keyword list in priority order.
// The first keyword found in a row wins, so order matters.
var DefaultPackageKeywords = []string{
	"CTNS", "QTN", "Pellate", "Boxes", "Euro Pellate", "Bags", "Cases", "Carton",
}

// Config holds reconstructor configuration
type Config struct {
	// Keywords scanned for the PackageType column, highest priority first
	PackageKeywords []string

	// Normalizer applied to every body cell
	Currency normalize.Currency
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		PackageKeywords: append([]string(nil), DefaultPackageKeywords...),
		Currency:        normalize.Default,
	}
}

// Validate rejects empty keywords.
func (c Config) Validate() error {
	for i, kw := range c.PackageKeywords {
		if kw == "" {
			return fmt.Errorf("package keyword %d is empty", i)
		}
	}
	return nil
}
