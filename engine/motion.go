package engine

import (
	"fmt"
	"math"
)

const (
	// obliqueRatio is tan(22.5°): a minor/major axis ratio above this puts
	// the swipe in one of the eight-way diagonal sectors.
	obliqueRatio = 0.41421356

	// rotateThreshold is the accumulated rotation (degrees) beyond which a
	// pinch counts as a rotation rather than a zoom.
	rotateThreshold = 30.0
)

// tapMotions maps accumulated pointer tap counts to motion names. Counts
// beyond the table are rejected, never truncated.
var tapMotions = map[int]string{
	1: "tap",
	2: "double_tap",
	3: "triple_tap",
	4: "quadruple_tap",
}

// ClassifySwipe turns summed swipe deltas into a motion name. minDistSq is
// the minimum accumulated distance squared; below it the swipe declines
// (ok=false). With oblique enabled and a minor/major ratio above
// tan(22.5°), the minor-axis direction is appended, giving eight-way
// resolution ("left_up") instead of four-way ("left").
func ClassifySwipe(dx, dy float64, minDistSq float64, oblique bool) (string, bool) {
	distSq := dx*dx + dy*dy
	if distSq == 0 || distSq < minDistSq {
		return "", false
	}

	absX, absY := math.Abs(dx), math.Abs(dy)

	var major, minor string
	var ratio float64
	if absX >= absY {
		major = direction(dx, "left", "right")
		minor = direction(dy, "up", "down")
		ratio = safeRatio(absY, absX)
	} else {
		major = direction(dy, "up", "down")
		minor = direction(dx, "left", "right")
		ratio = safeRatio(absX, absY)
	}

	if oblique && ratio > obliqueRatio {
		return major + "_" + minor, true
	}
	return major, true
}

// ClassifyPinch turns the accumulated (scale deviation, rotation degrees)
// pair into a motion name. With rotate enabled and |angle| above 30°, the
// gesture is a rotation; otherwise a nonzero scale deviation classifies as
// "in" (≤ 0) or "out" (> 0). Zero net scale declines.
func ClassifyPinch(scale, angle float64, rotate bool) (string, bool) {
	if rotate && math.Abs(angle) > rotateThreshold {
		if angle >= 0 {
			return "clockwise", true
		}
		return "anticlockwise", true
	}
	if scale == 0 {
		return "", false
	}
	if scale > 0 {
		return "out", true
	}
	return "in", true
}

// ClassifyTaps maps a pointer tap count to a motion name. Counts outside the
// supported table are an error, and the gesture must be dropped.
func ClassifyTaps(count int) (string, error) {
	motion, ok := tapMotions[count]
	if !ok {
		return "", fmt.Errorf("unsupported tap count %d", count)
	}
	return motion, nil
}

func direction(v float64, negative, positive string) string {
	if v < 0 {
		return negative
	}
	return positive
}

func safeRatio(minor, major float64) float64 {
	if major == 0 {
		return 0
	}
	return minor / major
}
