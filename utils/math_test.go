package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestDegToRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, DegToRad(-90), test.ShouldAlmostEqual, -math.Pi/2)
}

func TestClampInt(t *testing.T) {
	test.That(t, ClampInt(0, 1, 100), test.ShouldEqual, 1)
	test.That(t, ClampInt(500, 1, 100), test.ShouldEqual, 100)
	test.That(t, ClampInt(42, 1, 100), test.ShouldEqual, 42)
}
