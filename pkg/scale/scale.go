// Package scale picks human-friendly axis bounds and tick spacings for
// arbitrary numeric ranges. Calculations are heuristic: the goal is labels
// a person can read at a glance, not mathematically optimal coverage.
package scale

import "math"

// tickDivisors are tried in order; ties on decimal-digit count keep the
// earlier divisor.
var tickDivisors = [...]int{6, 8, 10, 4, 5}

// rangeSteps is the scale-factor progression used to snap bounds, and
// tickFractions the tick spacing (as a fraction of the working power of
// ten) paired with each step.
var (
	rangeSteps    = [...]float64{0, 1, 1.5, 2, 3, 5, 10}
	tickFractions = [...]float64{0, 0.25, 0.5, 1, 1, 1, 2}
)

// ApproxEqual reports whether a and b are equal within display tolerance.
// Inputs are on-screen values, so float32-grade precision is plenty.
func ApproxEqual(a, b float64) bool {
	tol := 1e-5 * math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= tol
}

// TickValue returns a tick spacing for [min, max] such that the range
// divides by one of a small set of round divisors into a value with a
// short decimal representation. A zero range yields a zero tick.
func TickValue(min, max float64) float64 {
	span := max - min

	bestDigitCount := math.MaxInt32
	bestDivisor := 10
	for _, divisor := range tickDivisors {
		candidate := span / float64(divisor)
		wholeDigits := orderOfMagnitude(min + candidate)
		for digitCount := -(wholeDigits - 1); digitCount < 6; digitCount++ {
			test := min + candidate*math.Pow(10, float64(digitCount))
			if ApproxEqual(math.Trunc(test), test) {
				if digitCount < bestDigitCount {
					bestDigitCount = digitCount
					bestDivisor = divisor
				}
				break
			}
		}
	}

	if ApproxEqual(span, 0) {
		return 0
	}
	return span / float64(bestDivisor)
}

// AutoScaleRange expands [min, max] to bounds snapped to natural-feeling
// magnitudes and returns them together with a matching tick spacing. Zero
// is forced into the returned range, and the returned range always
// contains the input range. A zero input range yields (0, 0, 0).
func AutoScaleRange(min, max float64) (outMin, outMax, tick float64) {
	min = math.Min(0, math.Min(min, max))
	max = math.Max(0, math.Max(min, max))

	digits := magnitudeOf(max)
	if d := magnitudeOf(min); d > digits {
		digits = d
	}
	powerOfTen := math.Pow(10, float64(digits-1))

	startingMax := math.Copysign(powerOfTen, sign(max))
	startingMin := math.Copysign(powerOfTen, sign(min))

	outMin, outMax = min, max
	var tickFracMin, tickFracMax float64

	// Forward scan snaps bounds on the zero-facing side, backward scan
	// snaps the outward-facing side to the tightest step still covering
	// the input.
	for i := 0; i < len(rangeSteps); i++ {
		curMin := startingMin * rangeSteps[i]
		curMax := startingMax * rangeSteps[i]

		if min > 0 && curMin <= min {
			outMin = curMin
			tickFracMin = tickFractions[i]
		}
		if max < 0 && curMax >= max {
			outMax = curMax
			tickFracMax = tickFractions[i]
		}
	}
	for i := len(rangeSteps) - 1; i >= 0; i-- {
		curMin := startingMin * rangeSteps[i]
		curMax := startingMax * rangeSteps[i]

		if min < 0 && curMin <= min {
			outMin = curMin
			tickFracMin = tickFractions[i]
		}
		if max > 0 && curMax >= max {
			outMax = curMax
			tickFracMax = tickFractions[i]
		}
	}

	tick = powerOfTen * math.Max(tickFracMin, tickFracMax)
	return outMin, outMax, tick
}

// orderOfMagnitude returns ceil(log10(x)), the count of whole digits in x.
// Non-positive inputs count as a single digit.
func orderOfMagnitude(x float64) int {
	if x <= 0 {
		return 1
	}
	return int(math.Ceil(math.Log10(x)))
}

// magnitudeOf is orderOfMagnitude over |x|, with a large negative sentinel
// for zero so that zero never dominates the working power of ten.
func magnitudeOf(x float64) int {
	if ApproxEqual(math.Abs(x), 0) {
		return math.MinInt32 + 1
	}
	return int(math.Ceil(math.Log10(math.Abs(x))))
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
