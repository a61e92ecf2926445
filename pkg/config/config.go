// Package config adapts the edge-separator's tunables (sep.Options) to a
// Viper-backed configuration layer: defaults in code, overridable by file or
// by Set, with a zerolog.Logger built from the logging namespace.
package config

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gilchrisn/edgesep/pkg/sep"
)

// Config manages edge-separator configuration using Viper, mirroring the
// louvain package's SetDefault/getter/LoadFromFile/Set/CreateLogger shape.
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration carrying sep.NewOptions' defaults.
func NewConfig() *Config {
	v := viper.New()
	defaults := sep.NewOptions()

	v.SetDefault("coarsen.limit", defaults.CoarsenLimit)
	v.SetDefault("coarsen.shrink_floor", defaults.ShrinkFloor)

	v.SetDefault("matching.strategy", defaults.MatchingStrategy.String())
	v.SetDefault("matching.community", defaults.DoCommunityMatching)
	v.SetDefault("matching.davis_brotherly_threshold", defaults.DavisBrotherlyThreshold)

	v.SetDefault("guess.cut_type", defaults.GuessCutType.String())
	v.SetDefault("guess.search_depth", defaults.GuessSearchDepth)

	v.SetDefault("refine.num_dances", defaults.NumDances)
	v.SetDefault("refine.use_fm", defaults.UseFM)
	v.SetDefault("refine.fm_search_depth", defaults.FMSearchDepth)
	v.SetDefault("refine.fm_consider_count", defaults.FMConsiderCount)
	v.SetDefault("refine.fm_max_refinements", defaults.FMMaxNumRefinements)
	v.SetDefault("refine.use_qp_gradproj", defaults.UseQPGradProj)
	v.SetDefault("refine.use_qp_ballopt", defaults.UseQPBallOpt)
	v.SetDefault("refine.gradproj_tol", defaults.GradprojTol)
	v.SetDefault("refine.gradproj_iteration_limit", defaults.GradprojIterationLimit)

	v.SetDefault("balance.target_split", defaults.TargetSplit)
	v.SetDefault("balance.tolerance", defaults.Tolerance)

	v.SetDefault("diagnostics.expensive_checks", defaults.DoExpensiveChecks)

	v.SetDefault("performance.num_workers", runtime.NumCPU())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.pretty", true)

	return &Config{v: v}
}

// LoadFromFile merges in a config file (YAML/JSON/TOML, per Viper's format
// sniffing), overriding any default not also set via Set afterward.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set allows dynamic configuration changes, e.g. from CLI flags.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

func (c *Config) CoarsenLimit() int      { return c.v.GetInt("coarsen.limit") }
func (c *Config) ShrinkFloor() float64   { return c.v.GetFloat64("coarsen.shrink_floor") }
func (c *Config) MatchingStrategy() string { return c.v.GetString("matching.strategy") }
func (c *Config) DoCommunityMatching() bool { return c.v.GetBool("matching.community") }
func (c *Config) DavisBrotherlyThreshold() float64 {
	return c.v.GetFloat64("matching.davis_brotherly_threshold")
}
func (c *Config) GuessCutType() string   { return c.v.GetString("guess.cut_type") }
func (c *Config) GuessSearchDepth() int  { return c.v.GetInt("guess.search_depth") }
func (c *Config) NumDances() int         { return c.v.GetInt("refine.num_dances") }
func (c *Config) UseFM() bool            { return c.v.GetBool("refine.use_fm") }
func (c *Config) FMSearchDepth() int     { return c.v.GetInt("refine.fm_search_depth") }
func (c *Config) FMConsiderCount() int   { return c.v.GetInt("refine.fm_consider_count") }
func (c *Config) FMMaxNumRefinements() int {
	return c.v.GetInt("refine.fm_max_refinements")
}
func (c *Config) UseQPGradProj() bool { return c.v.GetBool("refine.use_qp_gradproj") }
func (c *Config) UseQPBallOpt() bool  { return c.v.GetBool("refine.use_qp_ballopt") }
func (c *Config) GradprojTol() float64 { return c.v.GetFloat64("refine.gradproj_tol") }
func (c *Config) GradprojIterationLimit() int {
	return c.v.GetInt("refine.gradproj_iteration_limit")
}
func (c *Config) TargetSplit() float64       { return c.v.GetFloat64("balance.target_split") }
func (c *Config) Tolerance() float64         { return c.v.GetFloat64("balance.tolerance") }
func (c *Config) DoExpensiveChecks() bool    { return c.v.GetBool("diagnostics.expensive_checks") }
func (c *Config) NumWorkers() int            { return c.v.GetInt("performance.num_workers") }
func (c *Config) LogLevel() string           { return c.v.GetString("logging.level") }
func (c *Config) Pretty() bool               { return c.v.GetBool("logging.pretty") }

// matchingStrategyByName resolves a config string back to a sep.MatchingStrategy.
func matchingStrategyByName(name string) sep.MatchingStrategy {
	switch name {
	case sep.HEM.String(), "HEMSR", "HEMSRdeg":
		return sep.HEM
	case sep.HEMPA.String():
		return sep.HEMPA
	case sep.HEMDavisPA.String():
		return sep.HEMDavisPA
	default:
		return sep.Random
	}
}

func guessCutTypeByName(name string) sep.GuessCutType {
	switch name {
	case sep.GuessQP.String():
		return sep.GuessQP
	case sep.GuessRandom.String():
		return sep.GuessRandom
	case sep.GuessNaturalOrder.String():
		return sep.GuessNaturalOrder
	default:
		return sep.GuessPseudoperipheralFast
	}
}

// Options builds a sep.Options from the current configuration, attaching
// the logger built by CreateLogger.
func (c *Config) Options() sep.Options {
	return sep.Options{
		CoarsenLimit:            c.CoarsenLimit(),
		ShrinkFloor:             c.ShrinkFloor(),
		MatchingStrategy:        matchingStrategyByName(c.MatchingStrategy()),
		DoCommunityMatching:     c.DoCommunityMatching(),
		DavisBrotherlyThreshold: c.DavisBrotherlyThreshold(),
		GuessCutType:            guessCutTypeByName(c.GuessCutType()),
		GuessSearchDepth:        c.GuessSearchDepth(),
		NumDances:               c.NumDances(),
		UseFM:                   c.UseFM(),
		FMSearchDepth:           c.FMSearchDepth(),
		FMConsiderCount:         c.FMConsiderCount(),
		FMMaxNumRefinements:     c.FMMaxNumRefinements(),
		UseQPGradProj:           c.UseQPGradProj(),
		UseQPBallOpt:            c.UseQPBallOpt(),
		GradprojTol:             c.GradprojTol(),
		GradprojIterationLimit:  c.GradprojIterationLimit(),
		TargetSplit:             c.TargetSplit(),
		Tolerance:               c.Tolerance(),
		DoExpensiveChecks:       c.DoExpensiveChecks(),
		Logger:                  c.CreateLogger(),
	}
}

// CreateLogger creates a zerolog logger from the logging namespace, pretty
// console output by default (mirroring the louvain package's ConsoleWriter
// setup) since this engine runs as a CLI, not a long-lived service.
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}
	if !c.Pretty() {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("service", "edgesep").Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "edgesep").Logger()
}
