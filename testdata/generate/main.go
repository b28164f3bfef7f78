// Generates the synthetic loan ledger used to seed demos and train the
// bootstrap model. Deterministic via a fixed seed so regenerated data stays
// stable across machines.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
)

const (
	borrowerCount = 200
	periods       = 24
)

func main() {
	rng := rand.New(rand.NewSource(42))
	outPath := filepath.Join(findTestdataDir(), "loan_ledger.csv")

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"borrower_id", "month", "income", "emi", "paid", "delay_days"}); err != nil {
		log.Fatalf("write header: %v", err)
	}

	rows := 0
	for borrowerID := 1; borrowerID <= borrowerCount; borrowerID++ {
		baseIncome := float64(20000 + rng.Intn(40001))

		// EMI held at 20-40% of the starting income, per basic banking
		// affordability rules.
		emi := baseIncome * (0.2 + rng.Float64()*0.2)

		income := baseIncome

		// temporary_stress borrowers hit trouble for months 6-8 and then
		// recover; normal borrowers just have background noise.
		stressed := rng.Intn(2) == 1

		for month := 1; month <= periods; month++ {
			// Occasional income drop from job loss or emergency.
			if rng.Float64() < 0.1 {
				income *= 0.7
			}

			paid := 1
			delayDays := 0

			switch {
			case stressed && month >= 6 && month <= 8:
				paid = 0
				delayDays = 60 + rng.Intn(31)
			case stressed && month > 8:
				// Recovered.
			default:
				chance := rng.Float64()
				if chance < 0.10 {
					paid = 0
					delayDays = 60 + rng.Intn(31)
				} else if chance < 0.25 {
					delayDays = 10 + rng.Intn(21)
				}
			}

			row := []string{
				fmt.Sprintf("%d", borrowerID),
				fmt.Sprintf("%d", month),
				fmt.Sprintf("%.0f", income),
				fmt.Sprintf("%.0f", emi),
				fmt.Sprintf("%d", paid),
				fmt.Sprintf("%d", delayDays),
			}
			if err := w.Write(row); err != nil {
				log.Fatalf("write row: %v", err)
			}
			rows++
		}
	}

	log.Printf("Wrote %d ledger rows for %d borrowers to %s", rows, borrowerCount, outPath)
}

// findTestdataDir locates the testdata directory whether the generator runs
// from the repo root or from its own directory.
func findTestdataDir() string {
	candidates := []string{"testdata", "."}
	for _, dir := range candidates {
		if info, err := os.Stat(filepath.Join(dir, "generate")); err == nil && info.IsDir() {
			return dir
		}
	}
	return "testdata"
}
