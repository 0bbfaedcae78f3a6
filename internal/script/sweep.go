package script

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/metrics"
	"github.com/san-kum/armrig/internal/pointer"
)

// Variant is one configuration to replay a scenario against. Build must
// return a fresh rotator every call.
type Variant struct {
	Label  string
	Build  func() (animate.Rotator, error)
	Camera pointer.Camera
}

// Sweep replays sc once per variant, in parallel. Each run owns its rotator,
// so no state is shared between goroutines. Results are in variant order.
func Sweep(ctx context.Context, sc *Scenario, variants []Variant) ([]*Result, error) {
	results := make([]*Result, len(variants))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			rot, err := v.Build()
			if err != nil {
				return fmt.Errorf("%s: %w", v.Label, err)
			}
			res, err := Run(ctx, sc, rot, v.Camera, metrics.Defaults(rot.Arm())...)
			if err != nil {
				return fmt.Errorf("%s: %w", v.Label, err)
			}
			res.Scenario = sc.Name + "/" + v.Label
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
