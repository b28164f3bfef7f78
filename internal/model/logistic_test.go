package model

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lendguard/riskengine/internal/domain"
	"github.com/lendguard/riskengine/internal/labeling"
)

// trainingSamples builds three well-separated borrower populations and
// labels them with the bootstrap heuristic, so the fit approximates the
// labeler the way the production training run does.
func trainingSamples(t *testing.T) []Sample {
	t.Helper()
	rng := rand.New(rand.NewSource(7))

	var samples []Sample
	add := func(fv *domain.FeatureVector) {
		samples = append(samples, Sample{Vector: fv, Label: labeling.Label(fv)})
	}

	for i := 0; i < 25; i++ {
		// Clean payers.
		add(&domain.FeatureVector{
			MissedEMICount: rng.Intn(2),
			AvgDelayDays:   rng.Float64() * 5,
			MaxDelayDays:   5 + rng.Float64()*15,
			EMIIncomeRatio: 0.2 + rng.Float64()*0.2,
		})
		// One strong delay signal.
		add(&domain.FeatureVector{
			MissedEMICount: rng.Intn(2),
			AvgDelayDays:   10 + rng.Float64()*10,
			MaxDelayDays:   60 + rng.Float64()*30,
			EMIIncomeRatio: 0.3 + rng.Float64()*0.2,
		})
		// Distressed on every axis.
		add(&domain.FeatureVector{
			MissedEMICount: 4 + rng.Intn(4),
			AvgDelayDays:   40 + rng.Float64()*20,
			MaxDelayDays:   70 + rng.Float64()*25,
			EMIIncomeRatio: 0.95 + rng.Float64()*0.4,
		})
	}
	return samples
}

func fitted(t *testing.T) *LogisticModel {
	t.Helper()
	m, err := Train(trainingSamples(t), TrainOptions{})
	require.NoError(t, err)
	return m
}

func TestTrainSeparatesArchetypes(t *testing.T) {
	m := fitted(t)

	tests := []struct {
		name string
		fv   *domain.FeatureVector
		want domain.RiskLevel
	}{
		{"clean payer", &domain.FeatureVector{MissedEMICount: 0, AvgDelayDays: 2, MaxDelayDays: 10, EMIIncomeRatio: 0.3}, domain.RiskLow},
		{"single delay signal", &domain.FeatureVector{MissedEMICount: 1, AvgDelayDays: 15, MaxDelayDays: 75, EMIIncomeRatio: 0.4}, domain.RiskMedium},
		{"distressed", &domain.FeatureVector{MissedEMICount: 5, AvgDelayDays: 50, MaxDelayDays: 85, EMIIncomeRatio: 1.1}, domain.RiskHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level, confidence, err := m.Predict(tc.fv)
			require.NoError(t, err)
			assert.Equal(t, tc.want, level)
			assert.Greater(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

func TestScoreHighTracksDistress(t *testing.T) {
	m := fitted(t)

	low := &domain.FeatureVector{MissedEMICount: 0, AvgDelayDays: 1, MaxDelayDays: 8, EMIIncomeRatio: 0.25}
	high := &domain.FeatureVector{MissedEMICount: 6, AvgDelayDays: 55, MaxDelayDays: 90, EMIIncomeRatio: 1.2}

	lowScore, err := m.ScoreHigh(low)
	require.NoError(t, err)
	highScore, err := m.ScoreHigh(high)
	require.NoError(t, err)

	assert.Greater(t, highScore, 0.5)
	assert.Less(t, lowScore, 0.3)
	assert.Greater(t, highScore, lowScore)
}

func TestTrainFreezesLabelMapping(t *testing.T) {
	m := fitted(t)

	// All three classes present, no duplicates, and the artifact round-trip
	// carries the exact same mapping.
	assert.ElementsMatch(t, domain.RiskLevels, m.Labels)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, Save(m, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Labels, loaded.Labels)
	assert.Equal(t, m.Features, loaded.Features)
	assert.Equal(t, m.Weights, loaded.Weights)

	fv := &domain.FeatureVector{MissedEMICount: 5, AvgDelayDays: 50, MaxDelayDays: 85, EMIIncomeRatio: 1.1}
	wantLevel, wantConfidence, err := m.Predict(fv)
	require.NoError(t, err)
	gotLevel, gotConfidence, err := loaded.Predict(fv)
	require.NoError(t, err)
	assert.Equal(t, wantLevel, gotLevel)
	assert.InDelta(t, wantConfidence, gotConfidence, 1e-12)
}

func TestTrainRejectsDegenerateSets(t *testing.T) {
	_, err := Train(nil, TrainOptions{})
	assert.Error(t, err)

	fv := &domain.FeatureVector{EMIIncomeRatio: 0.3}
	_, err = Train([]Sample{{Vector: fv, Label: domain.RiskLow}}, TrainOptions{})
	assert.Error(t, err, "single-class training set must be rejected")
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestLoadCorruptArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestLoadRejectsForeignFeatureSchema(t *testing.T) {
	m := fitted(t)
	m.Features = []string{"missed_emi_count", "avg_delay_days", "max_delay_days", "credit_utilization"}

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, Save(m, path))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrFeatureShape)
}

func TestLoadRejectsBrokenLabelMapping(t *testing.T) {
	m := fitted(t)
	m.Labels = []domain.RiskLevel{domain.RiskHigh, domain.RiskHigh, domain.RiskLow}

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, Save(m, path))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestPredictShapeMismatch(t *testing.T) {
	m := fitted(t)
	m.Features = m.Features[:3] // model trained on a narrower schema

	_, _, err := m.Predict(&domain.FeatureVector{})
	assert.ErrorIs(t, err, domain.ErrFeatureShape)
}
