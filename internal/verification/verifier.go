// Package verification checks that generation runs are reproducible.
// A run is replayed from its parameters and seed, and every asset is
// compared field by field against a reference.
package verification

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gbm-asset-lab/internal/domain"
	"gbm-asset-lab/internal/orchestrator"
	"gbm-asset-lab/internal/reporting"
	"gbm-asset-lab/internal/storage"
	"gbm-asset-lab/internal/storage/memory"
)

// ExactTolerance requests bit-for-bit float comparison.
const ExactTolerance = 0.0

// StoredTolerance is the largest divergence allowed between a replayed
// price and its persisted, rounded value: half a unit in the last
// written decimal place, plus float slack.
var StoredTolerance = 0.5*math.Pow10(-reporting.PriceDecimals) + 1e-9

// FieldDivergence represents a mismatch between reference and replayed values.
type FieldDivergence struct {
	Field    string      `json:"field"`    // field name, e.g. close_1[3]
	Expected interface{} `json:"expected"` // reference value
	Actual   interface{} `json:"actual"`   // replayed value
}

// AssetResult contains the result of verifying a single asset.
type AssetResult struct {
	Index       int               `json:"index"`
	Symbol      string            `json:"symbol"`
	Match       bool              `json:"match"`
	Divergences []FieldDivergence `json:"divergences,omitempty"`
}

// Report contains results for a whole run.
type Report struct {
	RunID           string        `json:"run_id"`
	TotalAssets     int           `json:"total_assets"`
	MatchedAssets   int           `json:"matched_assets"`
	DivergentAssets int           `json:"divergent_assets"`
	Results         []AssetResult `json:"results"`
}

// OK reports whether every asset matched.
func (r *Report) OK() bool {
	return r.DivergentAssets == 0
}

// Verifier replays runs in memory.
type Verifier struct {
	params     domain.SimulationParams
	withVolume bool
}

// New creates a Verifier for the given run parameters.
func New(params domain.SimulationParams, withVolume bool) *Verifier {
	return &Verifier{params: params, withVolume: withVolume}
}

// VerifyDeterminism generates the run twice from the same seed and
// compares every value bit for bit.
func (v *Verifier) VerifyDeterminism(ctx context.Context) (*Report, error) {
	refResult, refRecords, err := v.replay(ctx)
	if err != nil {
		return nil, fmt.Errorf("reference run: %w", err)
	}
	_, records, err := v.replay(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay run: %w", err)
	}

	report := newReport(refResult)
	for i, ref := range refRecords {
		report.add(i, ref.Symbol, CompareRecords(ref, records[i], ExactTolerance))
	}
	return report, nil
}

// VerifyStored replays the run and compares it against records previously
// persisted in store, within StoredTolerance. Assets whose symbol was
// repeated later in the run are compared against the last occurrence only.
func (v *Verifier) VerifyStored(ctx context.Context, store storage.AssetStore) (*Report, error) {
	result, records, err := v.replay(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay run: %w", err)
	}

	last := make(map[string]int, len(records))
	for i, rec := range records {
		last[rec.Symbol] = i
	}

	report := newReport(result)
	for i, rec := range records {
		if last[rec.Symbol] != i {
			continue
		}
		stored, err := store.Get(ctx, rec.Symbol)
		if errors.Is(err, storage.ErrNotFound) {
			report.add(i, rec.Symbol, []FieldDivergence{{Field: "Error", Expected: rec.Symbol, Actual: "not found"}})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", rec.Symbol, err)
		}
		stored.Symbol = rec.Symbol
		report.add(i, rec.Symbol, CompareRecords(stored, rec, StoredTolerance))
	}
	return report, nil
}

// replay runs the orchestrator into an in-memory store and returns the
// records in generation order.
func (v *Verifier) replay(ctx context.Context) (*orchestrator.RunResult, []*domain.AssetRecord, error) {
	store := &recordingStore{AssetStore: memory.NewAssetStore()}
	orch := orchestrator.New(orchestrator.Options{
		Params:     v.params,
		Store:      store,
		WithVolume: v.withVolume,
	})
	result, err := orch.Run(ctx)
	if err != nil {
		return nil, nil, err
	}
	return result, store.records, nil
}

// recordingStore keeps every Put in order, overwritten symbols included.
type recordingStore struct {
	*memory.AssetStore
	records []*domain.AssetRecord
}

func (s *recordingStore) Put(ctx context.Context, rec *domain.AssetRecord) (string, error) {
	loc, err := s.AssetStore.Put(ctx, rec)
	if err != nil {
		return "", err
	}
	s.records = append(s.records, rec)
	return loc, nil
}

func newReport(result *orchestrator.RunResult) *Report {
	return &Report{
		RunID:   result.RunID,
		Results: make([]AssetResult, 0, len(result.Assets)),
	}
}

func (r *Report) add(index int, symbol string, divergences []FieldDivergence) {
	res := AssetResult{
		Index:       index,
		Symbol:      symbol,
		Match:       len(divergences) == 0,
		Divergences: divergences,
	}
	r.TotalAssets++
	if res.Match {
		r.MatchedAssets++
	} else {
		r.DivergentAssets++
	}
	r.Results = append(r.Results, res)
}

// CompareRecords compares two asset records and returns divergences.
// A tolerance of ExactTolerance compares float bits.
func CompareRecords(expected, actual *domain.AssetRecord, tolerance float64) []FieldDivergence {
	var divergences []FieldDivergence

	if expected.Symbol != actual.Symbol {
		divergences = append(divergences, FieldDivergence{
			Field:    "Symbol",
			Expected: expected.Symbol,
			Actual:   actual.Symbol,
		})
	}

	if len(expected.Dates) != len(actual.Dates) {
		divergences = append(divergences, FieldDivergence{
			Field:    "Dates",
			Expected: len(expected.Dates),
			Actual:   len(actual.Dates),
		})
	} else {
		for i := range expected.Dates {
			if !expected.Dates[i].Equal(actual.Dates[i]) {
				divergences = append(divergences, FieldDivergence{
					Field:    fmt.Sprintf("%s[%d]", reporting.DateColumn, i),
					Expected: expected.Dates[i].Format(domain.DateLayout),
					Actual:   actual.Dates[i].Format(domain.DateLayout),
				})
			}
		}
	}

	if len(expected.Paths) != len(actual.Paths) {
		divergences = append(divergences, FieldDivergence{
			Field:    "Paths",
			Expected: len(expected.Paths),
			Actual:   len(actual.Paths),
		})
	} else {
		for p := range expected.Paths {
			name := domain.ColumnName(p)
			if len(expected.Paths[p]) != len(actual.Paths[p]) {
				divergences = append(divergences, FieldDivergence{
					Field:    name,
					Expected: len(expected.Paths[p]),
					Actual:   len(actual.Paths[p]),
				})
				continue
			}
			for k := range expected.Paths[p] {
				if !floatEquals(expected.Paths[p][k], actual.Paths[p][k], tolerance) {
					divergences = append(divergences, FieldDivergence{
						Field:    fmt.Sprintf("%s[%d]", name, k),
						Expected: expected.Paths[p][k],
						Actual:   actual.Paths[p][k],
					})
				}
			}
		}
	}

	if len(expected.Volume) != len(actual.Volume) {
		divergences = append(divergences, FieldDivergence{
			Field:    reporting.VolumeColumn,
			Expected: len(expected.Volume),
			Actual:   len(actual.Volume),
		})
	} else {
		for k := range expected.Volume {
			if expected.Volume[k] != actual.Volume[k] {
				divergences = append(divergences, FieldDivergence{
					Field:    fmt.Sprintf("%s[%d]", reporting.VolumeColumn, k),
					Expected: expected.Volume[k],
					Actual:   actual.Volume[k],
				})
			}
		}
	}

	return divergences
}

// floatEquals compares a and b within tolerance; zero tolerance compares bits.
func floatEquals(a, b, tolerance float64) bool {
	if tolerance == ExactTolerance {
		return math.Float64bits(a) == math.Float64bits(b)
	}
	return math.Abs(a-b) <= tolerance
}
