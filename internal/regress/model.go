// Package regress applies the frozen regression model. The artifact is
// produced by offline training and consumed here read-only; there is no
// retraining or online learning anywhere in the pipeline.
package regress

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/symcla/symcla/internal/matrix"
	"github.com/symcla/symcla/internal/model"
)

// ErrFeatureContract is returned when a feature matrix does not match the
// frozen model's declared feature set and order. Fatal: a silently
// misaligned column would corrupt every score without raising an error.
var ErrFeatureContract = eris.New("regress: feature matrix violates model contract")

// Model is a frozen additive regression model over marker bitscores.
// Features holds the fit-time column order; the input matrix must match it
// exactly.
type Model struct {
	Name         string    `yaml:"name"`
	Features     []string  `yaml:"features"`
	Coefficients []float64 `yaml:"coefficients"`
	Means        []float64 `yaml:"means"`
	Intercept    float64   `yaml:"intercept"`
}

// LoadModel reads and validates a serialized model artifact.
func LoadModel(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "regress: read model artifact %s", path)
	}

	var m Model
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, eris.Wrapf(err, "regress: parse model artifact %s", path)
	}
	if len(m.Features) == 0 {
		return nil, eris.Errorf("regress: model artifact %s declares no features", path)
	}
	if len(m.Coefficients) != len(m.Features) {
		return nil, eris.Errorf("regress: model artifact %s: %d coefficients for %d features",
			path, len(m.Coefficients), len(m.Features))
	}
	if len(m.Means) != len(m.Features) {
		return nil, eris.Errorf("regress: model artifact %s: %d means for %d features",
			path, len(m.Means), len(m.Features))
	}
	seen := make(map[string]bool, len(m.Features))
	for _, f := range m.Features {
		if seen[f] {
			return nil, eris.Errorf("regress: model artifact %s: duplicate feature %q", path, f)
		}
		seen[f] = true
	}
	return &m, nil
}

// CheckContract verifies that cols equals the model's feature set in the
// exact fit-time order.
func (m *Model) CheckContract(cols []string) error {
	if len(cols) != len(m.Features) {
		return eris.Wrapf(ErrFeatureContract, "%d columns, model expects %d", len(cols), len(m.Features))
	}
	for i, f := range m.Features {
		if cols[i] != f {
			return eris.Wrapf(ErrFeatureContract, "column %d is %q, model expects %q", i, cols[i], f)
		}
	}
	return nil
}

// Baseline is the model output for a row at the training feature means.
// Per-feature contributions sum to the deviation from this value.
func (m *Model) Baseline() float64 {
	out := m.Intercept
	for j, c := range m.Coefficients {
		out += c * m.Means[j]
	}
	return out
}

// Predict scores every row of the feature matrix. Pure function: same
// matrix, same scores. Zero-fill rows yield a defined score like any other.
func (m *Model) Predict(fm *matrix.FeatureMatrix) ([]model.Prediction, error) {
	if err := m.CheckContract(fm.Models); err != nil {
		return nil, err
	}

	preds := make([]model.Prediction, 0, len(fm.Genomes))
	for i, genome := range fm.Genomes {
		score := m.Intercept
		for j, c := range m.Coefficients {
			score += c * fm.Data[i][j]
		}
		preds = append(preds, model.Prediction{Genome: genome, Score: score})
	}
	return preds, nil
}
