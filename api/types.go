// API types for cost estimation.
// These types define the contract for the estimate endpoints.

package api

import (
	"github.com/shopspring/decimal"

	"vfx-cost/core/output"
	"vfx-cost/core/pricing"
	"vfx-cost/core/style"
	"vfx-cost/core/types"
)

// EstimateResponse is the output of POST /estimate and of each websocket reply
type EstimateResponse struct {
	// Breakdown is the full-precision engine output
	Breakdown *types.Breakdown `json:"breakdown"`

	// Lines is the itemized report, total last
	Lines []output.LineItem `json:"lines"`

	// Chart holds the positive display groups
	Chart []output.Segment `json:"chart"`

	// CostPerSecond is total / duration
	CostPerSecond decimal.Decimal `json:"costPerSecond"`

	// Badges name the discounts that applied
	Badges []string `json:"badges,omitempty"`

	// Display holds presentation-rounded amounts
	Display DisplayAmounts `json:"display"`

	// Metadata describes how the estimate was produced
	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// DisplayAmounts are amounts rounded for presentation, e.g. "12,345 MMK"
type DisplayAmounts struct {
	Total         string `json:"total"`
	CostPerSecond string `json:"costPerSecond"`
}

// ResponseMetadata contains execution metadata
type ResponseMetadata struct {
	RequestID     string `json:"requestId,omitempty"`
	EngineVersion string `json:"engineVersion"`
	FPSPolicy     string `json:"fpsPolicy"`
	BriefMode     string `json:"briefMode"`
	RateCard      string `json:"rateCard"`
	DurationMs    int64  `json:"durationMs"`
}

// RatesResponse is the output of GET /rates
type RatesResponse struct {
	Currency    types.Currency            `json:"currency"`
	FPSPolicy   pricing.FPSPolicy         `json:"fpsPolicy"`
	BriefMode   pricing.BriefMode         `json:"briefMode"`
	Fingerprint string                    `json:"fingerprint"`
	Tables      []pricing.MultiplierTable `json:"tables"`
	Fields      []style.Field             `json:"fields"`

	// Unselected styles every option that is not the current value
	Unselected style.Classes         `json:"unselected"`
	Chart      []style.ChartCategory `json:"chart"`
}

// ErrorResponse is the error envelope every endpoint uses
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// StreamMessage is a websocket reply frame
type StreamMessage struct {
	// Type is "estimate" or "error"
	Type     string            `json:"type"`
	Estimate *EstimateResponse `json:"estimate,omitempty"`
	Error    *ErrorBody        `json:"error,omitempty"`
}

func newEstimateResponse(shot types.ShotConfiguration, b *types.Breakdown, detailed bool) *EstimateResponse {
	sr := output.NewShotReport(shot, b, output.Options{ShowDetails: detailed}).Scenes[0]
	return &EstimateResponse{
		Breakdown:     b,
		Lines:         sr.Lines,
		Chart:         sr.Chart,
		CostPerSecond: sr.CostPerSecond,
		Badges:        sr.Badges,
		Display: DisplayAmounts{
			Total:         output.FormatMoney(b.Total, b.Currency),
			CostPerSecond: output.FormatMoney(sr.CostPerSecond, b.Currency),
		},
	}
}
