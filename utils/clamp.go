package utils

// Clamp constrains value to the closed interval [min, max].
// When the interval is empty (max < min) the lower bound wins, so a canvas
// narrower than its margins still keeps items at the margin.
func Clamp(value, min, max float64) float64 {
	if value > max {
		value = max
	}
	if value < min {
		value = min
	}
	return value
}
