package sep

import "github.com/rs/zerolog"

// MatchingStrategy selects which matching passes run before the cleanup
// pass described in §4.1.
type MatchingStrategy int

const (
	// Random matches k with the first unmatched neighbor found in CSC
	// order. Despite the name it does not randomize; see the Open
	// Question in spec §9 — this is the documented, deterministic
	// behavior, not a bug.
	Random MatchingStrategy = iota
	// HEM matches k with its heaviest unmatched neighbor.
	HEM
	// HEMPA runs HEM, then passive-aggressive brotherly/community matching.
	HEMPA
	// HEMDavisPA runs HEM, then PA restricted to high-degree hubs.
	HEMDavisPA
)

func (m MatchingStrategy) String() string {
	switch m {
	case Random:
		return "Random"
	case HEM:
		return "HEM"
	case HEMPA:
		return "HEM+PA"
	case HEMDavisPA:
		return "HEM+DavisPA"
	default:
		return "unknown"
	}
}

// GuessCutType selects the initial-partitioning strategy run on the
// coarsest graph.
type GuessCutType int

const (
	// GuessPseudoperipheralFast grows a bisection from a pseudoperipheral
	// vertex pair found by GuessSearchDepth BFS iterations.
	GuessPseudoperipheralFast GuessCutType = iota
	GuessQP
	GuessRandom
	GuessNaturalOrder
)

func (g GuessCutType) String() string {
	switch g {
	case GuessQP:
		return "GuessQP"
	case GuessRandom:
		return "GuessRandom"
	case GuessNaturalOrder:
		return "GuessNaturalOrder"
	case GuessPseudoperipheralFast:
		return "Pseudoperipheral_Fast"
	default:
		return "unknown"
	}
}

// Options bundles every tunable named in spec §6. There is no process-wide
// mutable configuration; every call to ComputeEdgeSeparator takes its own
// Options value.
type Options struct {
	RandomSeed int64

	CoarsenLimit int
	// ShrinkFloor stops coarsening when cn/n exceeds 1-ShrinkFloor, i.e.
	// a coarsening pass that doesn't shrink the graph enough to be worth
	// another level. Not a named option in spec §6's table (it is a
	// driver-internal stall knob) but exposed here rather than hardcoded.
	ShrinkFloor float64

	MatchingStrategy        MatchingStrategy
	DoCommunityMatching     bool
	DavisBrotherlyThreshold float64

	GuessCutType     GuessCutType
	GuessSearchDepth int

	NumDances int

	UseFM                bool
	FMSearchDepth        int
	FMConsiderCount      int
	FMMaxNumRefinements  int

	UseQPGradProj          bool
	UseQPBallOpt           bool
	GradprojTol            float64
	GradprojIterationLimit int

	TargetSplit float64
	Tolerance   float64

	DoExpensiveChecks bool

	// Logger is write-only and thread-local per §5; the zero value is a
	// disabled logger (zerolog.Nop()), so callers that don't care about
	// progress output pay nothing.
	Logger zerolog.Logger
}

// NewOptions returns the defaults from spec §6.
func NewOptions() Options {
	return Options{
		RandomSeed:              0,
		CoarsenLimit:            256,
		ShrinkFloor:             0.25,
		MatchingStrategy:        HEMDavisPA,
		DoCommunityMatching:     false,
		DavisBrotherlyThreshold: 2.0,
		GuessCutType:            GuessPseudoperipheralFast,
		GuessSearchDepth:        10,
		NumDances:               1,
		UseFM:                   true,
		FMSearchDepth:           50,
		FMConsiderCount:         3,
		FMMaxNumRefinements:     20,
		UseQPGradProj:           true,
		UseQPBallOpt:            true,
		GradprojTol:             1e-3,
		GradprojIterationLimit:  50,
		TargetSplit:             0.5,
		Tolerance:               0.01,
		DoExpensiveChecks:       false,
		Logger:                  zerolog.Nop(),
	}
}
