package returns

// CumulativeReturns compounds a sequence of period returns (in percent) into
// the running cumulative return at each step.
//
// Accumulation is geometric: the cumulative factor is multiplied by (1+r/100)
// for each period. Arithmetic summation of percentage returns is wrong for
// anything beyond a single period and must not be used; +10% followed by
// -10% is a -1% cumulative return, not 0.
//
// The result has the same length as the input. Each call starts from a
// factor of 1.0; there is no hidden accumulator across calls.
func CumulativeReturns(periodReturns []float64) []float64 {
	result := make([]float64, len(periodReturns))

	factor := 1.0
	for i, r := range periodReturns {
		factor *= 1 + r/100
		result[i] = (factor - 1) * 100
	}

	return result
}

// RollingReturns compounds period returns (in percent) over a trailing
// window of windowDays entries. Entries before a full window exists are
// reported as 0.
func RollingReturns(periodReturns []float64, windowDays int) []float64 {
	result := make([]float64, len(periodReturns))

	for i := range periodReturns {
		if i < windowDays-1 {
			continue
		}

		factor := 1.0
		for j := i - windowDays + 1; j <= i; j++ {
			factor *= 1 + periodReturns[j]/100
		}
		result[i] = (factor - 1) * 100
	}

	return result
}
