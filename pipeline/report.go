package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/invertedv/pnad"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	incomeCol = "Monthly_Income"
	weightCol = "Sampling_Weight"
)

// Report prints the first n rows of df, its column types and, when df has the income and
// weight columns, the population-weighted income.
func Report(w io.Writer, df *pnad.DF, n int) error {
	if n <= 0 {
		n = DefaultPreview
	}

	if _, e := fmt.Fprintf(w, "\n--- Sample of the Final DataFrame (Tableau Ready) ---\n%s", df.Head(n)); e != nil {
		return e
	}

	if _, e := fmt.Fprintf(w, "\n--- Data Types ---\n%s", df.Types()); e != nil {
		return e
	}

	s, ok := WeightedIncome(df)
	if !ok {
		return nil
	}

	_, e := fmt.Fprintf(w, "\n--- Weighted Monthly Income ---\n"+
		"estimated population: %.0f\nmean: %.2f\nmedian: %.2f\n", s.Population, s.Mean, s.Median)

	return e
}

// IncomeSummary is the survey-weighted income distribution.
type IncomeSummary struct {
	Population float64
	Mean       float64
	Median     float64
}

// WeightedIncome expands the sample by Sampling_Weight. Rows where either value is null are skipped.
// ok is false if df lacks the columns or has no usable rows.
func WeightedIncome(df *pnad.DF) (s IncomeSummary, ok bool) {
	income, weight := df.Column(incomeCol), df.Column(weightCol)
	if income == nil || weight == nil ||
		income.DataType() == pnad.DTstring || weight.DataType() == pnad.DTstring {
		return s, false
	}

	xAll, wAll := income.AsFloat(), weight.AsFloat()
	type pair struct{ x, w float64 }
	var pairs []pair
	for ind := range xAll {
		if income.IsNull(ind) || weight.IsNull(ind) || wAll[ind] <= 0 {
			continue
		}

		pairs = append(pairs, pair{xAll[ind], wAll[ind]})
	}

	if len(pairs) == 0 {
		return s, false
	}

	// Quantile needs x sorted with the weights carried along
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].x < pairs[j].x })
	x, wt := make([]float64, len(pairs)), make([]float64, len(pairs))
	for ind, p := range pairs {
		x[ind], wt[ind] = p.x, p.w
	}

	s.Population = floats.Sum(wt)
	s.Mean = stat.Mean(x, wt)
	s.Median = stat.Quantile(0.5, stat.Empirical, x, wt)

	return s, true
}
