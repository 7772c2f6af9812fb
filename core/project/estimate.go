// Project aggregation

package project

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/logging"
)

// Pricer computes one scene's breakdown. *pricing.Engine satisfies it.
type Pricer interface {
	Compute(shot types.ShotConfiguration) (*types.Breakdown, error)
}

// SceneEstimate pairs a scene with its breakdown
type SceneEstimate struct {
	Scene     types.Scene      `json:"scene"`
	Breakdown *types.Breakdown `json:"breakdown"`
}

// Estimate is the priced project: per-scene breakdowns plus the sum of totals
type Estimate struct {
	// Scenes are in project order
	Scenes []SceneEstimate `json:"scenes"`

	// Total is the sum of scene totals; scenes never affect each other
	Total decimal.Decimal `json:"total"`

	// Currency is taken from the first breakdown
	Currency types.Currency `json:"currency"`
}

// EstimateScenes prices every scene and sums the totals.
// The first scene the engine rejects aborts the estimate.
func EstimateScenes(pricer Pricer, scenes []types.Scene) (*Estimate, error) {
	est := &Estimate{Scenes: make([]SceneEstimate, 0, len(scenes))}

	for i, s := range scenes {
		b, err := pricer.Compute(s.Data)
		if err != nil {
			return nil, errors.Pricing(fmt.Sprintf("scene %d (%s)", i+1, s.Name), err).
				WithContext("scene_id", s.ID)
		}
		if i == 0 {
			est.Currency = b.Currency
		}
		est.Scenes = append(est.Scenes, SceneEstimate{Scene: s, Breakdown: b})
		est.Total = est.Total.Add(b.Total)
	}

	logging.Debug("project estimated",
		zap.Int("scenes", len(est.Scenes)),
		zap.String("total", est.Total.String()),
	)
	return est, nil
}

// Estimate prices every scene of the project
func (p *Project) Estimate(pricer Pricer) (*Estimate, error) {
	return EstimateScenes(pricer, p.scenes)
}
