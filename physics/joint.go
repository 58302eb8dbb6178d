package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/plus3/nudelsalat/ecs"
)

// Joint is a temporary pivot constraint holding a body at a point of another body.
type Joint struct {
	Constraint *cp.Constraint
	Target     *ecs.EntityRef
}

// Grab pins target to holder. The pin sits at the holder's centre and at anchor (a world
// point) on the target, so the target keeps its offset while it follows the holder.
func (w *World) Grab(holder, target *Body, anchor cp.Vector) *Joint {
	c := cp.NewPivotJoint2(holder.Body, target.Body, cp.Vector{}, target.Body.WorldToLocal(anchor))
	c.SetMaxForce(w.opts.GrabMaxForce)
	c.SetErrorBias(w.opts.GrabErrorBias)
	w.Space.AddConstraint(c)

	return &Joint{Constraint: c, Target: target.Ref()}
}

// Release removes the joint. Releasing a nil or already removed joint is a no-op.
func (w *World) Release(j *Joint) {
	if j == nil || j.Constraint == nil {
		return
	}
	if w.Space.ContainsConstraint(j.Constraint) {
		w.Space.RemoveConstraint(j.Constraint)
	}
	j.Constraint = nil
}

// Holds reports whether the joint is still part of the simulation.
func (w *World) Holds(j *Joint) bool {
	return j != nil && j.Constraint != nil && w.Space.ContainsConstraint(j.Constraint)
}
