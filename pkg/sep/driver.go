package sep

// ComputeEdgeSeparator runs the full multilevel pipeline of spec §4.3 on g:
// repeated match+coarsen until the graph stops shrinking meaningfully or
// CoarsenLimit is reached, an initial guess at the coarsest level, then
// uncoarsening with FM and (optionally) QP refinement at every level. The
// result is written back onto g's own Partition/CutCost/Imbalance fields;
// the per-level coarse graphs are scoped to this call and discarded once
// uncoarsening passes them.
func ComputeEdgeSeparator(g *Graph, opt *Options) error {
	if opt == nil {
		defaults := NewOptions()
		opt = &defaults
	}
	if g.N == 0 {
		return errInvalid("cannot separate an empty graph")
	}

	log := opt.Logger.With().Str("component", "driver").Logger()

	levels := []*Graph{g}
	cur := g
	for cur.N > opt.CoarsenLimit {
		if err := match(cur, opt); err != nil {
			return err
		}
		coarser, err := coarsen(cur, opt)
		if err != nil {
			return err
		}

		shrink := float64(coarser.N) / float64(cur.N)
		log.Debug().
			Int("fine_n", cur.N).
			Int("coarse_n", coarser.N).
			Float64("shrink", shrink).
			Msg("coarsened one level")

		if shrink > 1-opt.ShrinkFloor {
			// Matching barely shrank the graph; coarsening further would
			// stall, so stop here even if CoarsenLimit hasn't been reached.
			levels = append(levels, coarser)
			cur = coarser
			break
		}
		levels = append(levels, coarser)
		cur = coarser
	}

	log.Debug().Int("levels", len(levels)).Int("coarsest_n", cur.N).Msg("coarsening complete")

	coarsest := levels[len(levels)-1]
	if err := guess(coarsest, opt); err != nil {
		return err
	}
	for d := 0; d < opt.NumDances; d++ {
		fmRefine(coarsest, opt)
		if opt.UseQPGradProj || opt.UseQPBallOpt {
			if err := qpRefine(coarsest, opt); err != nil {
				return err
			}
		}
	}

	for i := len(levels) - 1; i > 0; i-- {
		fine := levels[i-1]
		coarse := levels[i]

		projectPartition(fine, coarse.Partition, opt.TargetSplit)
		for d := 0; d < opt.NumDances; d++ {
			fmRefine(fine, opt)
			if opt.UseQPGradProj || opt.UseQPBallOpt {
				if err := qpRefine(fine, opt); err != nil {
					return err
				}
			}
		}

		log.Debug().
			Int("level_n", fine.N).
			Float64("cut", fine.CutCost).
			Float64("imbalance", fine.Imbalance).
			Msg("uncoarsened one level")
	}

	return nil
}
