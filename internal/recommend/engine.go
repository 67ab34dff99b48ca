// Package recommend wires the eligibility filters, the fit scorer and the
// rationale builders into a single recommendation pass over a catalog.
package recommend

import (
	"fmt"

	"github.com/spigell/course-finder/internal/catalog"
	"github.com/spigell/course-finder/internal/explain"
	"github.com/spigell/course-finder/internal/filtering"
	"github.com/spigell/course-finder/internal/logger"
	"github.com/spigell/course-finder/internal/profile"
	"github.com/spigell/course-finder/internal/ranking"
	"github.com/spigell/course-finder/internal/summary"
	"github.com/spigell/course-finder/internal/utils"

	"go.uber.org/zap"
)

const maxRationaleLogLength = 120

// Recommendation is a ranked program with its rationales.
type Recommendation struct {
	ranking.Ranked
	explain.Rationale
}

// Result is the outcome of one recommendation pass.
type Result struct {
	Profile            profile.Profile  `json:"profile"`
	ProfileSummary     string           `json:"profile_summary"`
	ConstraintsSummary string           `json:"constraints_summary"`
	Steps              []filtering.Step `json:"filter_steps"`
	CatalogSize        int              `json:"catalog_size"`
	Recommendations    []Recommendation `json:"recommendations"`
}

// Engine runs recommendation passes against a read-only catalog. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	filters []filtering.Filter
	logger  *zap.Logger
}

// New creates an engine over the provided catalog.
func New(c *catalog.Catalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		catalog: c,
		filters: filtering.Default(),
		logger:  logger,
	}
}

// Filters returns the eligibility filters the engine applies.
func (e *Engine) Filters() []filtering.Filter {
	return e.filters
}

// Recommend filters, ranks and explains the catalog for the profile.
// An empty recommendation list is a normal result; catalog.ErrNoData is
// returned only when there is nothing to recommend from.
func (e *Engine) Recommend(p profile.Profile) (*Result, error) {
	if e.catalog.Len() == 0 {
		return nil, fmt.Errorf("recommend: %w", catalog.ErrNoData)
	}

	programs := e.catalog.Programs()
	eligible, steps := filtering.Run(&p, programs, e.filters, e.logger)
	ranked := ranking.Rank(&p, eligible)

	recommendations := make([]Recommendation, 0, len(ranked))
	for _, r := range ranked {
		rationale := explain.Explain(&p, &r.Program)

		logger.WithProgram(e.logger, r.Name, r.Institution).Debug("recommendation",
			zap.Int("fit_score", r.FitScore),
			zap.Float64("raw_total", r.RawTotal),
			zap.String("why_academic", utils.TruncateForLog(rationale.Academic, maxRationaleLogLength)),
		)

		recommendations = append(recommendations, Recommendation{
			Ranked:    r,
			Rationale: rationale,
		})
	}

	e.logger.Info("recommendations ready",
		zap.Int("catalog", len(programs)),
		zap.Int("eligible", len(eligible)),
	)

	return &Result{
		Profile:            p,
		ProfileSummary:     summary.Profile(&p),
		ConstraintsSummary: summary.Constraints(&p),
		Steps:              steps,
		CatalogSize:        len(programs),
		Recommendations:    recommendations,
	}, nil
}
