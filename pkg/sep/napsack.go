package sep

// qpNapsack projects y onto the feasible region {0<=x<=1, lo<=a'x<=hi} by
// solving for the scalar multiplier lambda such that
// x_k(lambda) = clip(y_k - lambda*a_k, 0, 1), per spec §4.6's napsack
// projection (GLOSSARY: "Napsack projection"). a_k > 0 for all k (node
// weights), so a'x(lambda) is non-increasing in lambda; qpNapdown and
// qpNapup bisect it from the two sides. This finds the same fixed point as
// the two-heap breakpoint search Mongoose_QPNapsack.cpp uses, by monotone
// bisection on lambda rather than an explicit breakpoint sweep.
func qpNapsack(y, a []float64, lo, hi, tol float64) (x []float64, freeStatus, freeList []int, b float64, ib int) {
	n := len(y)
	x = make([]float64, n)
	for k := range x {
		x[k] = clip01(y[k])
	}
	s := weightedSum(x, a)

	switch {
	case s < lo:
		x, s = qpNapup(y, a, lo)
	case s > hi:
		x, s = qpNapdown(y, a, hi)
	}

	freeStatus = make([]int, n)
	for k := 0; k < n; k++ {
		switch {
		case x[k] >= 1:
			freeStatus[k] = 1
		case x[k] <= 0:
			freeStatus[k] = -1
		default:
			freeStatus[k] = 0
			freeList = append(freeList, k)
		}
	}

	b = s
	switch {
	case s <= lo+tol:
		ib = -1
	case s >= hi-tol:
		ib = 1
	default:
		ib = 0
	}
	return x, freeStatus, freeList, b, ib
}

// qpNapdown bisects lambda >= 0 so that x_k(lambda) = clip(y_k-lambda*a_k,0,1)
// satisfies a'x(lambda) == target, for a target below the unconstrained sum
// (used when the unclipped projection overshoots hi).
func qpNapdown(y, a []float64, target float64) ([]float64, float64) {
	return napsackBisect(y, a, target, 1)
}

// qpNapup is qpNapdown's mirror for lambda <= 0 (used when the unclipped
// projection undershoots lo).
func qpNapup(y, a []float64, target float64) ([]float64, float64) {
	return napsackBisect(y, a, target, -1)
}

// napsackBisect searches for lambda of sign `dir` (+1 or -1) such that
// sum(a_k * clip(y_k - lambda*a_k, 0, 1)) equals target, using a fixed 100
// bisection steps (no tolerance test), then returns the x and weighted sum
// of the last midpoint evaluated.
func napsackBisect(y, a []float64, target float64, dir float64) ([]float64, float64) {
	const iterations = 100
	lambdaAt := func(lambda float64) ([]float64, float64) {
		n := len(y)
		x := make([]float64, n)
		s := 0.0
		for k := 0; k < n; k++ {
			x[k] = clip01(y[k] - lambda*a[k])
			s += a[k] * x[k]
		}
		return x, s
	}

	lo, hi := 0.0, dir
	// Grow the bracket until s(hi) crosses target (s is non-increasing in
	// lambda for dir>0, non-decreasing for dir<0).
	for i := 0; i < 64; i++ {
		_, s := lambdaAt(hi)
		if (dir > 0 && s <= target) || (dir < 0 && s >= target) {
			break
		}
		hi *= 2
	}

	var x []float64
	var s float64
	for i := 0; i < iterations; i++ {
		mid := (lo + hi) / 2
		x, s = lambdaAt(mid)
		if dir > 0 {
			if s > target {
				lo = mid
			} else {
				hi = mid
			}
		} else {
			if s < target {
				lo = mid
			} else {
				hi = mid
			}
		}
	}
	return x, s
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func weightedSum(x, a []float64) float64 {
	s := 0.0
	for k := range x {
		s += a[k] * x[k]
	}
	return s
}
