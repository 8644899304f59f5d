package depgraph

import (
	"math"
)

// ImportanceOptions configures centrality computation.
type ImportanceOptions struct {
	// Damping is the probability of following an edge vs teleporting (default: 0.85)
	Damping float64

	// MaxIterations caps the power iteration (default: 50)
	MaxIterations int

	// Tolerance for convergence detection (default: 1e-6)
	Tolerance float64
}

// DefaultImportanceOptions returns sensible defaults.
func DefaultImportanceOptions() ImportanceOptions {
	return ImportanceOptions{
		Damping:       0.85,
		MaxIterations: 50,
		Tolerance:     1e-6,
	}
}

// Importance computes a PageRank-style centrality score in [0,1] for every
// node. The teleport vector is weighted by each file's external reference
// count, so files that lean on many outside modules pull slightly more rank.
// If the iteration fails to converge within the bound, the result falls back
// to degree centrality. The fallback is policy, not an error path: a score is
// always computable.
func (g *Graph) Importance(opts ImportanceOptions) map[string]float64 {
	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = 0.85
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 50
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}

	n := len(g.nodes)
	if n == 0 {
		return map[string]float64{}
	}

	scores, converged := g.pageRank(opts)
	if !converged {
		return g.degreeCentrality()
	}
	return g.normalize(scores)
}

// pageRank runs the power iteration and reports convergence.
func (g *Graph) pageRank(opts ImportanceOptions) ([]float64, bool) {
	n := len(g.nodes)

	// Teleport vector weighted by external references: 1 + count, normalized.
	teleport := make([]float64, n)
	total := 0.0
	for i, p := range g.nodes {
		teleport[i] = 1.0 + float64(g.externalRefs[p])
		total += teleport[i]
	}
	for i := range teleport {
		teleport[i] /= total
	}

	scores := make([]float64, n)
	copy(scores, teleport)
	newScores := make([]float64, n)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		for i := range newScores {
			newScores[i] = 0
		}

		// Dangling mass is redistributed via the teleport vector.
		dangling := 0.0
		for i, outs := range g.outEdges {
			if len(outs) == 0 {
				dangling += scores[i]
				continue
			}
			contrib := scores[i] / float64(len(outs))
			for _, t := range outs {
				newScores[t] += contrib
			}
		}

		maxDiff := 0.0
		for i := range newScores {
			newScores[i] = opts.Damping*(newScores[i]+dangling*teleport[i]) +
				(1-opts.Damping)*teleport[i]
			diff := math.Abs(newScores[i] - scores[i])
			if diff > maxDiff {
				maxDiff = diff
			}
		}

		scores, newScores = newScores, scores

		if maxDiff < opts.Tolerance {
			return scores, true
		}
	}

	return scores, false
}

// degreeCentrality returns in+out degree normalized to [0,1].
func (g *Graph) degreeCentrality() map[string]float64 {
	result := make(map[string]float64, len(g.nodes))

	maxDegree := 0
	for i := range g.nodes {
		d := len(g.inEdges[i]) + len(g.outEdges[i])
		if d > maxDegree {
			maxDegree = d
		}
	}
	for i, p := range g.nodes {
		if maxDegree == 0 {
			result[p] = 0
			continue
		}
		result[p] = float64(len(g.inEdges[i])+len(g.outEdges[i])) / float64(maxDegree)
	}
	return result
}

// normalize maps raw scores onto [0,1] with the maximum at 1.
func (g *Graph) normalize(scores []float64) map[string]float64 {
	result := make(map[string]float64, len(g.nodes))

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}
	for i, p := range g.nodes {
		if maxScore == 0 {
			result[p] = 0
			continue
		}
		result[p] = scores[i] / maxScore
	}
	return result
}
