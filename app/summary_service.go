package app

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"
	"gonum.org/v1/gonum/stat/distuv"

	"oncoviz/domain/cohort"
	"oncoviz/internal/errors"
	"oncoviz/internal/pipeline"
)

// SummaryService computes per-regimen descriptive statistics and pairwise
// Welch comparisons for the current selection's melted data. Regimens are
// described concurrently under a weighted semaphore so one wide selection
// cannot monopolize the process.
type SummaryService struct {
	charts *ChartService
	sem    *semaphore.Weighted
}

// NewSummaryService creates a summary service sharing the chart service's
// table, allowing at most maxParallel concurrent regimen computations.
func NewSummaryService(charts *ChartService, maxParallel int64) *SummaryService {
	if maxParallel < 1 {
		maxParallel = 1
	}
	return &SummaryService{charts: charts, sem: semaphore.NewWeighted(maxParallel)}
}

// RegimenSummary is the descriptive block for one regimen's values.
type RegimenSummary struct {
	Regimen string  `json:"regimen"`
	Count   int     `json:"count"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// RegimenComparison is one pairwise Welch t-test between two regimens.
// Welch's form is used because the groups are small and nothing guarantees
// equal variances across regimens.
type RegimenComparison struct {
	RegimenA   string  `json:"regimen_a"`
	RegimenB   string  `json:"regimen_b"`
	MeanDiff   float64 `json:"mean_diff"`
	TStatistic float64 `json:"t_statistic"`
	DF         float64 `json:"degrees_of_freedom"`
	PValue     float64 `json:"p_value"`
}

// SummaryResult mirrors the chart states: a non-ready state carries no
// numbers, only the classification.
type SummaryResult struct {
	State       pipeline.State      `json:"state"`
	Metric      string              `json:"metric,omitempty"`
	Regimens    []RegimenSummary    `json:"regimens,omitempty"`
	Comparisons []RegimenComparison `json:"comparisons,omitempty"`
}

// Summarize runs the pipeline for the selection and describes the outcome
// per regimen. Incomplete and no-data selections return the bare state.
func (s *SummaryService) Summarize(ctx context.Context, sel cohort.Selection) (*SummaryResult, error) {
	rc := s.charts.Run(sel)
	result := &SummaryResult{State: rc.State, Metric: rc.Suffix}
	if rc.State != pipeline.StateReady {
		return result, nil
	}

	regimens := rc.Long.Regimens()
	sort.Strings(regimens)

	start := time.Now()
	summaries := make([]RegimenSummary, len(regimens))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, regimen := range regimens {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, errors.Wrap(err, "summary computation cancelled")
		}
		wg.Add(1)
		go func(i int, regimen string) {
			defer wg.Done()
			defer s.sem.Release(1)

			summary, err := describeRegimen(regimen, rc.Long.Values(regimen))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			summaries[i] = summary
		}(i, regimen)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	result.Regimens = summaries

	for i := 0; i < len(regimens); i++ {
		for j := i + 1; j < len(regimens); j++ {
			a := rc.Long.Values(regimens[i])
			b := rc.Long.Values(regimens[j])
			if len(a) < 2 || len(b) < 2 {
				continue
			}
			result.Comparisons = append(result.Comparisons, welchCompare(regimens[i], regimens[j], a, b))
		}
	}

	log.Printf("[SummaryService] Summarized %d regimens, %d comparisons in %.2fms",
		len(result.Regimens), len(result.Comparisons), float64(time.Since(start).Nanoseconds())/1e6)
	return result, nil
}

func describeRegimen(regimen string, values []float64) (RegimenSummary, error) {
	summary := RegimenSummary{Regimen: regimen, Count: len(values)}
	if len(values) == 0 {
		return summary, nil
	}

	var err error
	if summary.Mean, err = stats.Mean(values); err != nil {
		return summary, errors.Wrapf(err, "mean for %s", regimen)
	}
	if summary.Median, err = stats.Median(values); err != nil {
		return summary, errors.Wrapf(err, "median for %s", regimen)
	}
	if summary.Min, err = stats.Min(values); err != nil {
		return summary, errors.Wrapf(err, "min for %s", regimen)
	}
	if summary.Max, err = stats.Max(values); err != nil {
		return summary, errors.Wrapf(err, "max for %s", regimen)
	}
	if len(values) > 1 {
		if summary.StdDev, err = stats.StandardDeviationSample(values); err != nil {
			return summary, errors.Wrapf(err, "standard deviation for %s", regimen)
		}
	}
	return summary, nil
}

// welchCompare runs Welch's unequal-variance t-test with the
// Welch-Satterthwaite degrees of freedom and a two-sided p-value from the
// Student's t distribution.
func welchCompare(nameA, nameB string, a, b []float64) RegimenComparison {
	n1 := float64(len(a))
	n2 := float64(len(b))
	mean1, _ := stats.Mean(a)
	mean2, _ := stats.Mean(b)
	var1, _ := stats.SampleVariance(a)
	var2, _ := stats.SampleVariance(b)

	cmp := RegimenComparison{
		RegimenA: nameA,
		RegimenB: nameB,
		MeanDiff: mean1 - mean2,
		PValue:   1,
	}

	se := math.Sqrt(var1/n1 + var2/n2)
	if se == 0 {
		// Two constant groups: no variance, nothing to test.
		return cmp
	}

	t := (mean1 - mean2) / se
	df := math.Pow(var1/n1+var2/n2, 2) /
		(math.Pow(var1/n1, 2)/(n1-1) + math.Pow(var2/n2, 2)/(n2-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	cmp.TStatistic = t
	cmp.DF = df
	cmp.PValue = 2 * (1 - dist.CDF(math.Abs(t)))
	return cmp
}
