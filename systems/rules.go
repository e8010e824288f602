package systems

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/birdies/components"
	"github.com/pthm-cable/birdies/config"
)

// BirdSnapshot is the read-only tick-start state of one bird.
type BirdSnapshot struct {
	Index   int
	Species components.Species
	Alive   bool
	Pos     r2.Vec
	Vel     r2.Vec // velocity committed on the previous tick
}

// RuleParams holds the constants rule evaluation needs for one tick.
type RuleParams struct {
	CollisionRadius   float64
	InteractionRadius float64
	ShiftToBuddy      float64
	SpeedAdjustment   float64
	AvoidStrength     float64
	ConeWidth         float64 // radians
	AlignmentFalloff  bool
}

// NewRuleParams combines live params with the static motion config.
func NewRuleParams(p config.Params, motion *config.MotionConfig) RuleParams {
	return RuleParams{
		CollisionRadius:   p.CollisionRadius,
		InteractionRadius: p.InteractionRadius,
		ShiftToBuddy:      p.ShiftToBuddy,
		SpeedAdjustment:   motion.SpeedAdjustment,
		AvoidStrength:     motion.AvoidStrength,
		ConeWidth:         motion.ConeDeg * math.Pi / 180,
		AlignmentFalloff:  motion.AlignmentFalloff,
	}
}

// Intent is the outcome of rule evaluation for one bird, applied after the
// compute phase.
type Intent struct {
	Proposed r2.Vec
	Kills    []int // prey indices caught this tick

	// Overlapping is the number of colliding neighbours at distance zero.
	// Their steer-away directions are random and drawn during commit.
	Overlapping int

	Collisions int
	Alignments int
}

// Reset clears an intent for reuse, keeping the Kills backing array.
func (in *Intent) Reset() {
	in.Proposed = r2.Vec{}
	in.Kills = in.Kills[:0]
	in.Overlapping = 0
	in.Collisions = 0
	in.Alignments = 0
}

// EvaluateRules applies predation, collision avoidance and alignment for
// self against each candidate neighbour and writes the result to out.
//
// Candidates are sorted in place and visited in ascending index order. Self,
// dead birds and duplicates are skipped, so every ordered pair is handled at
// most once per tick. All reads come from the snapshot.
func EvaluateRules(self *BirdSnapshot, candidates []int, all []BirdSnapshot, p *RuleParams, out *Intent) {
	out.Reset()
	out.Proposed = self.Vel
	if !self.Alive {
		return
	}

	caps := components.CapabilitiesOf(self.Species)
	heading := Heading(self.Vel)

	slices.Sort(candidates)
	prev := -1
	for _, j := range candidates {
		if j == prev || j == self.Index {
			continue
		}
		prev = j

		other := &all[j]
		if !other.Alive {
			continue
		}

		d := Distance(self.Pos, other.Pos)
		if d > p.InteractionRadius {
			continue
		}

		bearing := Bearing(self.Pos, other.Pos)
		if d > 0 && !InFrontalCone(bearing, heading, p.ConeWidth) {
			continue
		}

		if d <= p.CollisionRadius {
			if caps.CanKill && other.Species.CanBeKilled() {
				out.Kills = append(out.Kills, j)
				continue
			}

			out.Collisions++
			if d == 0 {
				out.Overlapping++
				continue
			}
			out.Proposed = r2.Sub(out.Proposed, r2.Scale(p.AvoidStrength, FromAngle(bearing)))
			continue
		}

		// Interaction zone: nobody aligns toward a hunter
		if other.Species.CanKill() {
			continue
		}
		out.Alignments++
		out.Proposed = align(out.Proposed, other, d, bearing, p)
	}
}

// align blends v toward the buddy's heading and shifts it toward the buddy.
func align(v r2.Vec, buddy *BirdSnapshot, d, bearing float64, p *RuleParams) r2.Vec {
	target := r2.Scale(p.SpeedAdjustment, FromAngle(Heading(buddy.Vel)))

	w := 1.0
	if p.AlignmentFalloff && p.InteractionRadius > p.CollisionRadius {
		w = 1 - clampFloat((d-p.CollisionRadius)/(p.InteractionRadius-p.CollisionRadius), 0, 1)
	}
	v = r2.Add(v, r2.Scale(w, r2.Sub(target, v)))

	return r2.Add(v, r2.Scale(p.ShiftToBuddy, FromAngle(bearing)))
}
