package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lendguard/riskengine/internal/domain"
)

// Save writes the model artifact to path. Weights and the label mapping live
// in one document and are written via a temp-file rename, so a reader never
// sees weights without their matching mapping.
func Save(m *LogisticModel, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename artifact: %w", err)
	}
	return nil
}

// Load reads and validates a model artifact. A missing or corrupt file is
// ErrModelUnavailable; a schema that does not match the current feature
// columns is ErrFeatureShape. Both are meant to be fatal at process start.
func Load(path string) (*LogisticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %v: %w", path, err, domain.ErrModelUnavailable)
	}

	var m LogisticModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse artifact %s: %v: %w", path, err, domain.ErrModelUnavailable)
	}

	if err := validate(&m); err != nil {
		return nil, fmt.Errorf("validate artifact %s: %w", path, err)
	}
	return &m, nil
}

// validate checks the artifact's internal consistency: the feature schema
// must match the current aggregator output, the label mapping must be a
// permutation of the known risk levels, and weight dimensions must agree.
func validate(m *LogisticModel) error {
	if len(m.Features) != len(domain.FeatureColumns) {
		return fmt.Errorf("trained on %d features, expected %d: %w",
			len(m.Features), len(domain.FeatureColumns), domain.ErrFeatureShape)
	}
	for i, name := range domain.FeatureColumns {
		if m.Features[i] != name {
			return fmt.Errorf("feature %d is %q, expected %q: %w",
				i, m.Features[i], name, domain.ErrFeatureShape)
		}
	}

	if len(m.Labels) != len(domain.RiskLevels) {
		return fmt.Errorf("%d labels in mapping, expected %d: %w",
			len(m.Labels), len(domain.RiskLevels), domain.ErrModelUnavailable)
	}
	seen := make(map[domain.RiskLevel]bool)
	for _, label := range m.Labels {
		valid := false
		for _, known := range domain.RiskLevels {
			if label == known {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown label %q in mapping: %w", label, domain.ErrModelUnavailable)
		}
		if seen[label] {
			return fmt.Errorf("duplicate label %q in mapping: %w", label, domain.ErrModelUnavailable)
		}
		seen[label] = true
	}

	if len(m.Means) != len(m.Features) || len(m.Stds) != len(m.Features) {
		return fmt.Errorf("standardization stats do not match feature count: %w", domain.ErrModelUnavailable)
	}
	if len(m.Weights) != len(m.Labels) {
		return fmt.Errorf("%d weight rows for %d labels: %w",
			len(m.Weights), len(m.Labels), domain.ErrModelUnavailable)
	}
	for c, row := range m.Weights {
		if len(row) != len(m.Features)+1 {
			return fmt.Errorf("weight row %d has %d terms, expected %d: %w",
				c, len(row), len(m.Features)+1, domain.ErrModelUnavailable)
		}
	}
	return nil
}
