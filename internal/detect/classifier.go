// Package detect implements recurring-expense pattern mining: a pure
// frequency classifier over per-merchant occurrence histories, and a detector
// that runs it across a user's transaction history.
package detect

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/billscout/backend/internal/model"
	"github.com/billscout/backend/pkg/datetime"
)

// Gap tolerance windows, in days. A median gap outside every window means the
// merchant is not recurring and the classifier returns no result.
const (
	weeklyGapMin  = 6
	weeklyGapMax  = 8
	monthlyGapMin = 27
	monthlyGapMax = 34
	yearlyGapMin  = 350
	yearlyGapMax  = 380
)

// HighVarianceCeiling is the coefficient-of-variation threshold above which a
// pattern's amounts are flagged as variable. Step-priced subscriptions still
// classify; the flag only surfaces in the candidate.
const HighVarianceCeiling = 0.35

// Confidence weights. Gap regularity dominates, occurrence count saturates at
// confidenceCountCap, amount stability contributes the rest. With fewer than
// two gaps there is no regularity evidence, so gapScore falls back to a low
// prior and two-occurrence patterns stay below 0.5.
const (
	weightGapRegularity = 0.5
	weightOccurrenceCnt = 0.3
	weightAmountStable  = 0.2
	confidenceCountCap  = 6
	sparseGapScorePrior = 0.3
)

// Occurrence is one dated payment to a merchant.
type Occurrence struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Classification is the inferred recurrence for one merchant pattern.
type Classification struct {
	Frequency       model.Frequency
	TypicalDay      int
	AverageAmount   decimal.Decimal
	AmountVariance  float64
	HighVariance    bool
	OccurrenceCount int
	Confidence      float64
	NextExpected    time.Time
}

// Classify infers a recurrence frequency and confidence from a merchant's
// occurrence history. It returns false when the history is too short or the
// gaps do not fit any tolerance window.
func Classify(occurrences []Occurrence) (*Classification, bool) {
	if len(occurrences) < 2 {
		return nil, false
	}

	occ := make([]Occurrence, len(occurrences))
	copy(occ, occurrences)
	sort.Slice(occ, func(i, j int) bool { return occ[i].Date.Before(occ[j].Date) })

	gaps := make([]float64, 0, len(occ)-1)
	for i := 1; i < len(occ); i++ {
		gaps = append(gaps, float64(datetime.DaysBetween(occ[i-1].Date, occ[i].Date)))
	}

	medianGap := median(gaps)
	if medianGap == 0 {
		// All occurrences on the same day; degenerate.
		return nil, false
	}

	frequency, ok := classifyGap(medianGap)
	if !ok {
		return nil, false
	}

	amounts := make([]float64, len(occ))
	sum := decimal.Zero
	for i, o := range occ {
		amounts[i] = o.Amount.Abs().InexactFloat64()
		sum = sum.Add(o.Amount.Abs())
	}
	avgAmount := sum.Div(decimal.NewFromInt(int64(len(occ)))).Round(2)
	amountCV := coefficientOfVariation(amounts)

	last := occ[len(occ)-1].Date
	day := typicalDay(occ, frequency)

	return &Classification{
		Frequency:       frequency,
		TypicalDay:      day,
		AverageAmount:   avgAmount,
		AmountVariance:  amountCV,
		HighVariance:    amountCV > HighVarianceCeiling,
		OccurrenceCount: len(occ),
		Confidence:      confidence(gaps, amountCV, len(occ)),
		NextExpected:    NextExpected(last, frequency, day),
	}, true
}

// NextExpected advances from the last occurrence by one period. For MONTHLY
// and YEARLY the day of period is clamped to the target month's actual day
// count, so day 31 lands on the last day of February.
func NextExpected(last time.Time, frequency model.Frequency, dayOfPeriod int) time.Time {
	last = datetime.StartOfDay(last)
	switch frequency {
	case model.FrequencyWeekly:
		return last.AddDate(0, 0, 7)
	case model.FrequencyYearly:
		target := time.Date(last.Year()+1, last.Month(), 1, 0, 0, 0, 0, time.UTC)
		day := datetime.ClampDayToMonth(dayOfPeriod, target)
		return target.AddDate(0, 0, day-1)
	default: // MONTHLY
		target := datetime.NextMonth(last)
		day := datetime.ClampDayToMonth(dayOfPeriod, target)
		return target.AddDate(0, 0, day-1)
	}
}

func classifyGap(medianGap float64) (model.Frequency, bool) {
	switch {
	case medianGap >= weeklyGapMin && medianGap <= weeklyGapMax:
		return model.FrequencyWeekly, true
	case medianGap >= monthlyGapMin && medianGap <= monthlyGapMax:
		return model.FrequencyMonthly, true
	case medianGap >= yearlyGapMin && medianGap <= yearlyGapMax:
		return model.FrequencyYearly, true
	default:
		return "", false
	}
}

// typicalDay returns the modal day of week (WEEKLY) or day of month across
// occurrences. Ties resolve to the earliest day.
func typicalDay(occ []Occurrence, frequency model.Frequency) int {
	counts := make(map[int]int)
	for _, o := range occ {
		if frequency == model.FrequencyWeekly {
			counts[int(o.Date.Weekday())]++
		} else {
			counts[o.Date.Day()]++
		}
	}
	best, bestCount := 0, -1
	for day, count := range counts {
		if count > bestCount || (count == bestCount && day < best) {
			best, bestCount = day, count
		}
	}
	return best
}

func confidence(gaps []float64, amountCV float64, occurrences int) float64 {
	gapScore := sparseGapScorePrior
	if len(gaps) >= 2 {
		gapScore = 1 / (1 + 3*coefficientOfVariation(gaps))
	}

	countScore := math.Min(float64(occurrences), confidenceCountCap) / confidenceCountCap
	amountScore := 1 / (1 + 2*amountCV)

	c := weightGapRegularity*gapScore + weightOccurrenceCnt*countScore + weightAmountStable*amountScore
	return math.Max(0, math.Min(1, c))
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// coefficientOfVariation is stddev/mean; 0 when the mean is 0.
func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}
