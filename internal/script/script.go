// Package script replays recorded pointer gestures against a rotator
// without a window, for regression runs and trace capture.
package script

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/armrig/internal/animate"
	"github.com/san-kum/armrig/internal/metrics"
	"github.com/san-kum/armrig/internal/pointer"
	"github.com/san-kum/armrig/internal/rig"
)

type Action string

const (
	Down Action = "down"
	Move Action = "move"
	Up   Action = "up"
	Miss Action = "miss"
	Wait Action = "wait"
)

var ErrInvalidStep = errors.New("script: invalid step")

// StepError wraps a failure with the step that caused it.
type StepError struct {
	Step    int
	Action  Action
	Tick    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) at tick %d: %v", e.Step, e.Action, e.Tick, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }

// Scenario is a named gesture sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset"`
	Steps       []Step `yaml:"steps"`
}

// Step is one pointer event followed by Ticks frames. At is in NDC; AtWorld
// is projected through the run camera instead.
type Step struct {
	Action  Action    `yaml:"action"`
	Joint   string    `yaml:"joint,omitempty"`
	At      []float64 `yaml:"at,omitempty"`
	AtWorld []float64 `yaml:"at_world,omitempty"`
	Ticks   int       `yaml:"ticks,omitempty"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: scenario has no steps", ErrInvalidStep)
	}
	for i, s := range sc.Steps {
		if err := s.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s Step) validate() error {
	if s.Ticks < 0 {
		return fmt.Errorf("%w: negative ticks", ErrInvalidStep)
	}
	if s.At != nil && len(s.At) != 2 {
		return fmt.Errorf("%w: at needs 2 values, got %d", ErrInvalidStep, len(s.At))
	}
	if s.AtWorld != nil && len(s.AtWorld) != 3 {
		return fmt.Errorf("%w: at_world needs 3 values, got %d", ErrInvalidStep, len(s.AtWorld))
	}
	switch s.Action {
	case Down:
		if s.Joint == "" {
			return fmt.Errorf("%w: down needs a joint", ErrInvalidStep)
		}
	case Move:
		if s.At == nil && s.AtWorld == nil {
			return fmt.Errorf("%w: move needs at or at_world", ErrInvalidStep)
		}
	case Wait:
		if s.Ticks == 0 {
			return fmt.Errorf("%w: wait needs ticks", ErrInvalidStep)
		}
	case Up, Miss:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidStep, s.Action)
	}
	return nil
}

func (s Step) ticks() int {
	if s.Ticks == 0 && s.Action != Wait {
		return 1
	}
	return s.Ticks
}

// JointSample is one joint's orientation state at a tick.
type JointSample struct {
	ID      rig.JointID
	Current mgl64.Quat
	Target  mgl64.Quat
	Swing   float64
}

type Sample struct {
	Tick   int
	Active rig.JointID
	Joints []JointSample
}

type Result struct {
	Scenario string
	Samples  []Sample
	Metrics  map[string]float64
}

// Run plays sc through rot, ticking with cam. Metrics observe every tick.
func Run(ctx context.Context, sc *Scenario, rot animate.Rotator, cam pointer.Camera, ms ...metrics.Metric) (*Result, error) {
	res := &Result{Scenario: sc.Name, Samples: make([]Sample, 0)}
	arm := rot.Arm()

	for i, step := range sc.Steps {
		if err := apply(step, rot, cam); err != nil {
			return res, &StepError{Step: i + 1, Action: step.Action, Tick: rot.Ticks(), Wrapped: err}
		}
		for n := 0; n < step.ticks(); n++ {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}
			rot.Tick(cam)
			for _, m := range ms {
				m.Observe(rot.Ticks(), arm)
			}
			res.Samples = append(res.Samples, sample(rot))
		}
	}

	res.Metrics = metrics.Collect(ms)
	return res, nil
}

func apply(step Step, rot animate.Rotator, cam pointer.Camera) error {
	switch step.Action {
	case Down:
		id := rig.JointID(step.Joint)
		at, ok := step.point(cam)
		if !ok {
			at, ok = handle(rot.Arm(), id, cam)
		}
		if !ok {
			at = mgl64.Vec2{}
		}
		return rot.PointerDown(id, at)
	case Move:
		at, ok := step.point(cam)
		if !ok {
			return fmt.Errorf("%w: at_world %v is behind the camera", ErrInvalidStep, step.AtWorld)
		}
		rot.PointerMove(at)
	case Up:
		rot.PointerUp()
	case Miss:
		rot.PointerMiss()
	}
	return nil
}

func (s Step) point(cam pointer.Camera) (mgl64.Vec2, bool) {
	if s.At != nil {
		return mgl64.Vec2{s.At[0], s.At[1]}, true
	}
	if s.AtWorld != nil {
		return cam.Project(mgl64.Vec3{s.AtWorld[0], s.AtWorld[1], s.AtWorld[2]})
	}
	return mgl64.Vec2{}, false
}

// handle is where a user would click to grab id.
func handle(arm *rig.Arm, id rig.JointID, cam pointer.Camera) (mgl64.Vec2, bool) {
	i, ok := arm.Index(id)
	if !ok {
		return mgl64.Vec2{}, false
	}
	return cam.Project(arm.WorldPose(i).Position)
}

func sample(rot animate.Rotator) Sample {
	arm := rot.Arm()
	s := Sample{Tick: rot.Ticks(), Joints: make([]JointSample, 0, len(arm.Joints))}
	if id, ok := rot.Active(); ok {
		s.Active = id
	}
	for i, j := range arm.Joints {
		if j.Rigid {
			continue
		}
		s.Joints = append(s.Joints, JointSample{
			ID:      j.ID,
			Current: j.Current,
			Target:  j.Target,
			Swing:   arm.Swing(i),
		})
	}
	return s
}

// Final returns the last sample, if any ticks ran.
func (r *Result) Final() (Sample, bool) {
	if len(r.Samples) == 0 {
		return Sample{}, false
	}
	return r.Samples[len(r.Samples)-1], true
}
