package utils

import (
	"math"
	"time"
)

// ToDuration converts a number of seconds from config into a time.Duration.
func ToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// ToDurationMs converts a number of milliseconds from config into a time.Duration.
func ToDurationMs(millis int) time.Duration {
	return time.Duration(millis) * time.Millisecond
}

// RoundHalfUp rounds x to the nearest integer, halves toward positive infinity.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
