package analyzer

import (
	"errors"
	"fmt"
)

var ErrUnknownVariant = errors.New("unknown checker variant")

// Variants lists the checker names NewChecker accepts, besides "all".
var Variants = []string{"overlap", "blend", "subclip", "faults"}

// NewChecker creates a checker based on the specified variant
func NewChecker(variant string) (Checker, error) {
	switch variant {
	case "overlap":
		return OverlapChecker{}, nil
	case "blend":
		return BlendChecker{}, nil
	case "subclip":
		return SubClipChecker{}, nil
	case "faults":
		return FaultChecker{}, nil
	case "all", "":
		return Multi{OverlapChecker{}, BlendChecker{}, SubClipChecker{}, FaultChecker{}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
}
