// Command train fits the risk classifier offline. It reads the raw payment
// ledger, aggregates per-borrower features, labels them with the bootstrap
// heuristic, fits the multinomial model, and writes the artifact the server
// loads at start.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/lendguard/riskengine/internal/domain"
	"github.com/lendguard/riskengine/internal/features"
	"github.com/lendguard/riskengine/internal/ingestion"
	"github.com/lendguard/riskengine/internal/labeling"
	"github.com/lendguard/riskengine/internal/model"
)

func main() {
	ledgerPath := flag.String("ledger", "testdata/loan_ledger.csv", "path to the payment ledger csv")
	outPath := flag.String("out", "risk_model.json", "path to write the model artifact")
	epochs := flag.Int("epochs", 1000, "training passes (floor of 1000 enforced)")
	rate := flag.Float64("rate", 0.1, "gradient descent learning rate")
	flag.Parse()

	data, err := os.ReadFile(*ledgerPath)
	if err != nil {
		log.Fatalf("read ledger: %v", err)
	}

	records, err := ingestion.ParseLedgerCSV(data)
	if err != nil {
		log.Fatalf("parse ledger: %v", err)
	}
	log.Printf("Loaded %d payment rows from %s", len(records), *ledgerPath)

	samples, err := buildSamples(records)
	if err != nil {
		log.Fatalf("build training set: %v", err)
	}
	log.Printf("Aggregated %d borrowers", len(samples))

	m, err := model.Train(samples, model.TrainOptions{Epochs: *epochs, LearningRate: *rate})
	if err != nil {
		log.Fatalf("train: %v", err)
	}

	report(m, samples)

	if err := model.Save(m, *outPath); err != nil {
		log.Fatalf("save artifact: %v", err)
	}
	log.Printf("Model artifact written to %s (classes: %v)", *outPath, m.Labels)
}

// buildSamples groups ledger rows per borrower, aggregates features, and
// attaches bootstrap labels.
func buildSamples(records []domain.PaymentRecord) ([]model.Sample, error) {
	byBorrower := make(map[int][]domain.PaymentRecord)
	for _, rec := range records {
		byBorrower[rec.BorrowerID] = append(byBorrower[rec.BorrowerID], rec)
	}

	ids := make([]int, 0, len(byBorrower))
	for id := range byBorrower {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var samples []model.Sample
	for _, id := range ids {
		fv, err := features.Aggregate(byBorrower[id])
		if err != nil {
			return nil, fmt.Errorf("borrower %d: %w", id, err)
		}
		samples = append(samples, model.Sample{
			Vector: fv,
			Label:  labeling.Label(fv),
		})
	}
	return samples, nil
}

// report prints training-set agreement between the fitted model and the
// bootstrap labels, per class.
func report(m *model.LogisticModel, samples []model.Sample) {
	correct := make(map[domain.RiskLevel]int)
	total := make(map[domain.RiskLevel]int)

	for _, s := range samples {
		predicted, _, err := m.Predict(s.Vector)
		if err != nil {
			log.Fatalf("predict during evaluation: %v", err)
		}
		total[s.Label]++
		if predicted == s.Label {
			correct[s.Label]++
		}
	}

	log.Printf("Training-set agreement with bootstrap labels:")
	for _, level := range domain.RiskLevels {
		if total[level] == 0 {
			log.Printf("  %-6s  no samples", level)
			continue
		}
		log.Printf("  %-6s  %d/%d (%.1f%%)", level, correct[level], total[level],
			float64(correct[level])/float64(total[level])*100)
	}
}
