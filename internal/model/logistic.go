package model

import (
	"fmt"
	"math"

	"github.com/lendguard/riskengine/internal/domain"
)

// LogisticModel is a multinomial logistic regression over the four ledger
// features. Labels carries the class-index-to-label mapping frozen at
// training time; it travels inside the artifact and is the only mapping
// serving code ever uses.
type LogisticModel struct {
	Features []string           `json:"features"`
	Labels   []domain.RiskLevel `json:"labels"`
	Means    []float64          `json:"means"`
	Stds     []float64          `json:"stds"`
	// Weights is one row per class; each row has one weight per feature
	// plus a trailing bias term.
	Weights [][]float64 `json:"weights"`
}

// Sample is one labeled training example.
type Sample struct {
	Vector *domain.FeatureVector
	Label  domain.RiskLevel
}

// TrainOptions tunes the gradient fit. Zero values pick the defaults.
type TrainOptions struct {
	Epochs       int
	LearningRate float64
}

// minEpochs is the floor on full passes over the training set. The fit is a
// plain full-batch gradient descent on the softmax cross-entropy, so it
// needs the passes to converge on well-separated labeler output.
const minEpochs = 1000

const defaultLearningRate = 0.1

// Train fits a LogisticModel on bootstrap-labeled feature vectors. The label
// mapping is built from first appearance order in the samples and frozen into
// the model; it is never re-derived from label names.
func Train(samples []Sample, opts TrainOptions) (*LogisticModel, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("train: no samples")
	}

	epochs := opts.Epochs
	if epochs < minEpochs {
		epochs = minEpochs
	}
	rate := opts.LearningRate
	if rate <= 0 {
		rate = defaultLearningRate
	}

	numFeatures := len(domain.FeatureColumns)

	// Freeze the class-index mapping in first-appearance order.
	labelIndex := make(map[domain.RiskLevel]int)
	var labels []domain.RiskLevel
	for _, s := range samples {
		if _, ok := labelIndex[s.Label]; !ok {
			labelIndex[s.Label] = len(labels)
			labels = append(labels, s.Label)
		}
	}
	numClasses := len(labels)
	if numClasses < 2 {
		return nil, fmt.Errorf("train: need at least 2 distinct labels, got %d", numClasses)
	}

	// Standardize columns so the delay features (0-365) do not drown the
	// ratio feature (0-2) during descent.
	means := make([]float64, numFeatures)
	stds := make([]float64, numFeatures)
	for _, s := range samples {
		for j, v := range s.Vector.Values() {
			means[j] += v
		}
	}
	n := float64(len(samples))
	for j := range means {
		means[j] /= n
	}
	for _, s := range samples {
		for j, v := range s.Vector.Values() {
			d := v - means[j]
			stds[j] += d * d
		}
	}
	for j := range stds {
		stds[j] = math.Sqrt(stds[j] / n)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}

	xs := make([][]float64, len(samples))
	ys := make([]int, len(samples))
	for i, s := range samples {
		xs[i] = standardize(s.Vector.Values(), means, stds)
		ys[i] = labelIndex[s.Label]
	}

	weights := make([][]float64, numClasses)
	for c := range weights {
		weights[c] = make([]float64, numFeatures+1)
	}

	grad := make([][]float64, numClasses)
	for c := range grad {
		grad[c] = make([]float64, numFeatures+1)
	}

	for epoch := 0; epoch < epochs; epoch++ {
		for c := range grad {
			for j := range grad[c] {
				grad[c][j] = 0
			}
		}

		for i, x := range xs {
			probs := softmax(weights, x)
			for c := 0; c < numClasses; c++ {
				err := probs[c]
				if c == ys[i] {
					err -= 1
				}
				for j := 0; j < numFeatures; j++ {
					grad[c][j] += err * x[j]
				}
				grad[c][numFeatures] += err
			}
		}

		for c := 0; c < numClasses; c++ {
			for j := 0; j <= numFeatures; j++ {
				weights[c][j] -= rate * grad[c][j] / n
			}
		}
	}

	return &LogisticModel{
		Features: append([]string(nil), domain.FeatureColumns...),
		Labels:   labels,
		Means:    means,
		Stds:     stds,
		Weights:  weights,
	}, nil
}

// Predict implements Classifier.
func (m *LogisticModel) Predict(fv *domain.FeatureVector) (domain.RiskLevel, float64, error) {
	probs, err := m.probabilities(fv)
	if err != nil {
		return "", 0, err
	}
	best := 0
	for c := range probs {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return m.Labels[best], probs[best], nil
}

// ScoreHigh implements Classifier.
func (m *LogisticModel) ScoreHigh(fv *domain.FeatureVector) (float64, error) {
	probs, err := m.probabilities(fv)
	if err != nil {
		return 0, err
	}
	for c, label := range m.Labels {
		if label == domain.RiskHigh {
			return probs[c], nil
		}
	}
	return 0, fmt.Errorf("classify: no HIGH class in label mapping: %w", domain.ErrModelUnavailable)
}

func (m *LogisticModel) probabilities(fv *domain.FeatureVector) ([]float64, error) {
	x := fv.Values()
	if len(x) != len(m.Features) {
		return nil, fmt.Errorf("classify: got %d features, model trained on %d: %w",
			len(x), len(m.Features), domain.ErrFeatureShape)
	}
	return softmax(m.Weights, standardize(x, m.Means, m.Stds)), nil
}

func standardize(x, means, stds []float64) []float64 {
	z := make([]float64, len(x))
	for j := range x {
		z[j] = (x[j] - means[j]) / stds[j]
	}
	return z
}

// softmax computes class probabilities for one standardized input. Shifted
// by the max logit for numerical stability.
func softmax(weights [][]float64, x []float64) []float64 {
	logits := make([]float64, len(weights))
	for c, row := range weights {
		z := row[len(x)] // bias
		for j := range x {
			z += row[j] * x[j]
		}
		logits[c] = z
	}

	maxLogit := logits[0]
	for _, z := range logits[1:] {
		if z > maxLogit {
			maxLogit = z
		}
	}

	var sum float64
	probs := make([]float64, len(logits))
	for c, z := range logits {
		probs[c] = math.Exp(z - maxLogit)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs
}
