package sep

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// qpState holds the working arrays of one QP refinement call, scoped to a
// single graph level per spec §3/§5: x, D, gradient, FreeSet and the
// napsack-constraint bookkeeping (lo/hi/b/ib).
type qpState struct {
	x    []float64
	d    []float64 // D[k]: weighted degree, diagonal of the Laplacian-like form
	grad []float64

	freeStatus []int // -1, 0, +1 per vertex
	freeList   []int // vertices with freeStatus == 0

	lo, hi float64
	b      float64
	ib     int
}

// qpLinks initializes qp from the current x (0/1 partition, or a constant
// targetSplit when seeded by GuessQP), per spec §4.6 / Mongoose_QPLinks.cpp.
// Fails with InvalidInput if any x_k is outside [0,1].
func qpLinks(g *Graph, opt *Options, x []float64) (*qpState, error) {
	n := g.N
	qp := &qpState{
		x:          x,
		d:          make([]float64, n),
		grad:       make([]float64, n),
		freeStatus: make([]int, n),
	}
	for k := 0; k < n; k++ {
		qp.d[k] = g.Degree(k)
	}
	for k := 0; k < n; k++ {
		qp.grad[k] = (0.5 - x[k]) * qp.d[k]
	}

	s := 0.0
	for k := 0; k < n; k++ {
		xk := x[k]
		if xk < 0 || xk > 1 {
			return nil, errInvalidAt("x outside [0,1] at QP init", k)
		}
		s += g.Wt[k] * xk
		r := 0.5 - xk
		for p := g.P[k]; p < g.P[k+1]; p++ {
			qp.grad[g.Idx[p]] += r * g.Ex[p]
		}
		switch {
		case xk >= 1:
			qp.freeStatus[k] = 1
		case xk <= 0:
			qp.freeStatus[k] = -1
		default:
			qp.freeStatus[k] = 0
			qp.freeList = append(qp.freeList, k)
		}
	}

	qp.b = s
	qp.lo = opt.TargetSplit*g.TotalNodeWeight - opt.Tolerance*g.TotalNodeWeight
	qp.hi = opt.TargetSplit*g.TotalNodeWeight + opt.Tolerance*g.TotalNodeWeight
	switch {
	case s <= qp.lo:
		qp.ib = -1
	case s < qp.hi:
		qp.ib = 0
	default:
		qp.ib = 1
	}
	return qp, nil
}

// applyLaplacian returns L*v where L = Diag(D) - A is the weighted
// Laplacian of g (spec §4.6: "Let L be the weighted Laplacian of G").
func applyLaplacian(g *Graph, qp *qpState, v []float64) []float64 {
	out := make([]float64, g.N)
	for k := 0; k < g.N; k++ {
		s := qp.d[k] * v[k]
		for p := g.P[k]; p < g.P[k+1]; p++ {
			s -= g.Ex[p] * v[g.Idx[p]]
		}
		out[k] = s
	}
	return out
}

// projectedGradNorm returns the 2-norm of the gradient restricted to the
// FreeSet, the termination signal for gradient projection (spec §4.6:
// "Terminate gradient projection when ‖Pg‖ ≤ gradprojTol").
func projectedGradNorm(qp *qpState) float64 {
	pg := make([]float64, len(qp.grad))
	for _, k := range qp.freeList {
		pg[k] = qp.grad[k]
	}
	return floats.Norm(pg, 2)
}

// qpGradProjStep performs one gradient-projection iteration: an exact line
// search along d=-grad restricted to the FreeSet, followed by napsack
// projection onto {0<=x<=1, lo<=a'x<=hi}.
func qpGradProjStep(g *Graph, opt *Options, qp *qpState) {
	n := g.N
	d := make([]float64, n)
	for _, k := range qp.freeList {
		d[k] = -qp.grad[k]
	}

	ld := applyLaplacian(g, qp, d)
	denom := floats.Dot(d, ld)
	var alpha float64
	if denom > 1e-14 {
		alpha = floats.Dot(d, d) / denom
	} else {
		alpha = 1.0
	}

	y := append([]float64(nil), qp.x...)
	floats.AddScaled(y, alpha, d)

	x, freeStatus, freeList, b, ib := qpNapsack(y, g.Wt, qp.lo, qp.hi, opt.GradprojTol)
	qp.x = x
	qp.freeStatus = freeStatus
	qp.freeList = freeList
	qp.b = b
	qp.ib = ib

	refreshGradient(g, qp)
}

// refreshGradient recomputes qp.grad from qp.x using the same formula as
// qpLinks. Called after each projection step; O(nz) per call, which is
// acceptable since gradient projection iterations are bounded by
// GradprojIterationLimit (default 50), not by graph size.
func refreshGradient(g *Graph, qp *qpState) {
	n := g.N
	for k := 0; k < n; k++ {
		qp.grad[k] = (0.5 - qp.x[k]) * qp.d[k]
	}
	for k := 0; k < n; k++ {
		r := 0.5 - qp.x[k]
		for p := g.P[k]; p < g.P[k+1]; p++ {
			qp.grad[g.Idx[p]] += r * g.Ex[p]
		}
	}
}

// qpBallOpt is the boundary ball optimization of spec §4.6: for each free
// variable, pin it to 0 or 1 if doing so strictly decreases the local
// quadratic cost while keeping a'x feasible.
func qpBallOpt(g *Graph, opt *Options, qp *qpState) {
	still := qp.freeList[:0:0]
	for _, k := range qp.freeList {
		xk := qp.x[k]
		// Change in cost from moving x_k to v with neighbors held fixed is
		// modelled as 0.5*D_k*(v-xk)^2 + grad_k*(v-xk), i.e. its derivative
		// at xk is qp.grad[k] (the gradient qpLinks/refreshGradient
		// maintain). Candidate values 0 and 1 are scored by this local
		// model; pick whichever reduces cost most while keeping a'x
		// feasible after the pin.
		cost0 := 0.5 * qp.d[k] * (0 - xk) * (0 - xk) + qp.grad[k]*(0-xk)
		cost1 := 0.5 * qp.d[k] * (1 - xk) * (1 - xk) + qp.grad[k]*(1-xk)

		pin := math.NaN()
		if cost0 < 0 && cost0 <= cost1 {
			pin = 0
		} else if cost1 < 0 && cost1 < cost0 {
			pin = 1
		}
		if math.IsNaN(pin) {
			still = append(still, k)
			continue
		}

		delta := g.Wt[k] * (pin - xk)
		newB := qp.b + delta
		if newB < qp.lo-1e-9 || newB > qp.hi+1e-9 {
			still = append(still, k)
			continue
		}

		qp.x[k] = pin
		qp.b = newB
		if pin == 0 {
			qp.freeStatus[k] = -1
		} else {
			qp.freeStatus[k] = 1
		}
	}
	qp.freeList = still
	refreshGradient(g, qp)
}

// qpRefine runs gradient projection and boundary ball optimization to
// stagnation, then rounds to {0,1} and re-derives cut/imbalance/boundary,
// per spec §4.6. It assumes g.Partition already holds the seed 0/1 values
// (or the caller has set x directly via qpRefineFrom).
func qpRefine(g *Graph, opt *Options) error {
	x := make([]float64, g.N)
	for k := 0; k < g.N; k++ {
		x[k] = float64(g.Partition[k])
	}
	return qpRefineFrom(g, opt, x)
}

// qpRefineFrom runs QP refinement starting from an explicit x (used by
// GuessQP, which seeds x_k = targetSplit for all k before any 0/1
// partition exists).
func qpRefineFrom(g *Graph, opt *Options, x []float64) error {
	qp, err := qpLinks(g, opt, x)
	if err != nil {
		return err
	}

	if opt.UseQPGradProj {
		for it := 0; it < opt.GradprojIterationLimit; it++ {
			if projectedGradNorm(qp) <= opt.GradprojTol {
				break
			}
			qpGradProjStep(g, opt, qp)
			if opt.UseQPBallOpt {
				qpBallOpt(g, opt, qp)
			}
		}
	} else if opt.UseQPBallOpt {
		qpBallOpt(g, opt, qp)
	}

	g.Partition = make([]int, g.N)
	for k := 0; k < g.N; k++ {
		if qp.x[k] >= 0.5 {
			g.Partition[k] = 1
		} else {
			g.Partition[k] = 0
		}
	}
	recomputePartitionState(g, opt.TargetSplit)
	return nil
}
