package preset

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidName reports whether name can be used as a preset file name.
func ValidName(name string) bool {
	return name != defaultName && validName.MatchString(name)
}

// ValidateRaw checks a merged preset before it is resolved.
func ValidateRaw(cfg RawPreset) error {
	var errs []string

	if cfg.Draws != nil && *cfg.Draws < 1 {
		errs = append(errs, "draws must be >= 1")
	}
	if cfg.Weight != nil && !validWeight(*cfg.Weight) {
		errs = append(errs, "weight must be a finite number >= 1")
	}
	if len(cfg.Items) == 0 {
		errs = append(errs, "items must not be empty")
	}

	seen := make(map[string]int, len(cfg.Items))
	for i, it := range cfg.Items {
		if it.Weight != nil && !validWeight(*it.Weight) {
			errs = append(errs, fmt.Sprintf("items[%d].weight must be a finite number >= 1", i))
		}
		// names are the draw identity; a repeat would never be drawn
		if j, ok := seen[it.Name]; ok {
			errs = append(errs, fmt.Sprintf("items[%d].name %q duplicates items[%d]", i, it.Name, j))
			continue
		}
		seen[it.Name] = i
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPreset, strings.Join(errs, "; "))
	}
	return nil
}

func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 1
}
