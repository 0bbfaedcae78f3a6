package animate

import (
	"fmt"

	"github.com/san-kum/armrig/internal/rig"
)

const (
	KindRaycast = "raycast"
	KindDelta   = "delta"
)

var Kinds = []string{KindRaycast, KindDelta}

// NewRotator builds the rotator named kind.
func NewRotator(kind string, arm *rig.Arm, settings Settings) (Rotator, error) {
	switch kind {
	case "", KindRaycast:
		return NewController(arm, settings)
	case KindDelta:
		return NewDeltaController(arm), nil
	}
	return nil, fmt.Errorf("animate: unknown rotator %q", kind)
}

var (
	_ Rotator = (*Controller)(nil)
	_ Rotator = (*DeltaController)(nil)
)
