// Package elementwise is the broadcasting-aware engine layered over
// package device's shape-matched functional cores: it resolves each
// operand's shape against the others per the NumPy-style trailing-axis
// rule, builds the broadcast Layouts, and only then hands off to device's
// BinaryCore/UnaryCore dispatch.
package elementwise

import "github.com/vynegra/tensorcore/errs"

// BroadcastShapes merges any number of shapes per the trailing-axis
// match-or-1 rule: shapes are right-aligned, missing leading axes act as
// extent 1, and at each aligned axis every non-1 extent present must agree.
func BroadcastShapes(shapes ...[]int) ([]int, error) {
	maxRank := 0
	for _, s := range shapes {
		if len(s) > maxRank {
			maxRank = len(s)
		}
	}
	out := make([]int, maxRank)
	for i := range out {
		out[i] = 1
	}
	for _, s := range shapes {
		offset := maxRank - len(s)
		for i, d := range s {
			axis := offset + i
			switch {
			case d == 1:
				// contributes nothing
			case out[axis] == 1:
				out[axis] = d
			case out[axis] != d:
				return nil, errs.New(errs.BroadcastIncompatible, "cannot broadcast shapes %v: axis %d has %d and %d", shapes, axis, out[axis], d)
			}
		}
	}
	return out, nil
}
