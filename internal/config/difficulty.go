package config

// BoardForPreset returns the board a preset selects. The second result is
// false when the preset has no entry, in which case cfg.Board applies.
func (cfg LabyrinthConfig) BoardForPreset(preset DifficultyPreset) (BoardConfig, bool) {
	if preset == "" || preset == DifficultyFixed {
		return cfg.Board, false
	}
	b, ok := cfg.Presets[string(preset)]
	if !ok || b.Width <= 0 || b.Height <= 0 {
		return cfg.Board, false
	}
	return b, true
}

// Score computes the score of a completed run. Every move beyond the optimal
// count and every hint reveal costs points; the result never goes below zero.
func (s ScoringConfig) Score(moves, optimal, hints int) int {
	extra := moves - optimal
	if extra < 0 {
		extra = 0
	}
	score := s.Base - extra*s.MovePenalty - hints*s.HintCost
	return max(score, 0)
}

// FitBoard shrinks a board so that it fits into maxW x maxH cells.
// Boards with FitToScreen disabled are returned as-is. Dimensions never drop
// below one cell.
func FitBoard(b BoardConfig, maxW, maxH int) BoardConfig {
	if !b.FitToScreen {
		return b
	}
	b.Width = clampDim(b.Width, maxW)
	b.Height = clampDim(b.Height, maxH)
	return b
}

// clampDim restricts a dimension to [1, limit]. A non-positive limit leaves
// the value unchanged.
func clampDim(v, limit int) int {
	if limit > 0 && v > limit {
		v = limit
	}
	return max(v, 1)
}
