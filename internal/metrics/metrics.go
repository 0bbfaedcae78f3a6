package metrics

import (
	"math"

	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/rig"
)

type Metric interface {
	Name() string
	Observe(tick int, arm *rig.Arm)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded for every headless run.
func Defaults(arm *rig.Arm) []Metric {
	ms := []Metric{NewConvergence(), NewSettleTick(1e-6)}
	for _, id := range arm.Draggable() {
		ms = append(ms, NewPeakSwing(id))
	}
	return ms
}

// Convergence is the largest angle between current and target over all
// joints at the last observed tick, in degrees.
type Convergence struct {
	name    string
	last    float64
	samples int
}

func NewConvergence() *Convergence {
	return &Convergence{name: "convergence"}
}

func (c *Convergence) Name() string { return c.name }

func (c *Convergence) Observe(_ int, arm *rig.Arm) {
	c.last = Distance(arm)
	c.samples++
}

func (c *Convergence) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return orient.Degrees(c.last)
}

func (c *Convergence) Reset() {
	c.last = 0
	c.samples = 0
}

// Distance is the worst current/target gap across the arm, in radians.
func Distance(arm *rig.Arm) float64 {
	var worst float64
	for i := range arm.Joints {
		j := &arm.Joints[i]
		if j.Rigid {
			continue
		}
		worst = math.Max(worst, orient.Angle(j.Current, j.Target))
	}
	return worst
}

// SettleTick records the tick at which the arm last came to rest. It reads
// -1 while the arm is still moving.
type SettleTick struct {
	name    string
	eps     float64
	settled int
	moving  bool
}

func NewSettleTick(eps float64) *SettleTick {
	return &SettleTick{name: "settle_tick", eps: eps}
}

func (s *SettleTick) Name() string { return s.name }

func (s *SettleTick) Observe(tick int, arm *rig.Arm) {
	if Distance(arm) > s.eps {
		s.moving = true
		return
	}
	if s.moving {
		s.settled = tick
		s.moving = false
	}
}

func (s *SettleTick) Value() float64 {
	if s.moving {
		return -1
	}
	return float64(s.settled)
}

func (s *SettleTick) Reset() {
	s.settled = 0
	s.moving = false
}

// PeakSwing is the widest swing a joint reached away from rest, in degrees.
type PeakSwing struct {
	name  string
	joint rig.JointID
	peak  float64
}

func NewPeakSwing(id rig.JointID) *PeakSwing {
	return &PeakSwing{name: "peak_swing_" + string(id), joint: id}
}

func (p *PeakSwing) Name() string { return p.name }

func (p *PeakSwing) Observe(_ int, arm *rig.Arm) {
	i, ok := arm.Index(p.joint)
	if !ok {
		return
	}
	p.peak = math.Max(p.peak, arm.Swing(i))
}

func (p *PeakSwing) Value() float64 { return orient.Degrees(p.peak) }

func (p *PeakSwing) Reset() { p.peak = 0 }

// Collect reads every metric into a name-keyed map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
