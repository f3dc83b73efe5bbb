package analysis

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"volchart/pkg/contracts/domain"
)

// window tracks one rolling average and the highest value it has reached
type window struct {
	size int
	// partial windows average whatever days are available so far
	partial bool
	high    float64
}

type windowResult struct {
	avg     float64
	low     int
	high    float64
	change  float64
	defined bool
}

// at computes the window ending at index i
func (w *window) at(volumes []float64, i int, lowCutoff float64) windowResult {
	if !w.partial && i < w.size-1 {
		return windowResult{}
	}

	start := i - w.size + 1
	if start < 0 {
		start = 0
	}
	days := volumes[start : i+1]

	avg, err := stats.Mean(days)
	if err != nil {
		return windowResult{}
	}

	res := windowResult{avg: avg, defined: true}
	for _, v := range days {
		if v <= lowCutoff {
			res.low++
		}
	}

	if avg > w.high {
		w.high = avg
	}
	res.high = w.high
	if w.high > 0 {
		res.change = (avg - w.high) / w.high * 100
	}
	return res
}

// fillMissingDays returns one record per calendar day from the first record
// through today. Days without data get zero volume; when a day appears more
// than once the last value wins.
func fillMissingDays(records []domain.VolumeRecord, today time.Time) []domain.VolumeRecord {
	if len(records) == 0 {
		return nil
	}

	byDay := make(map[time.Time]float64, len(records))
	first := records[0].Date
	for _, r := range records {
		byDay[r.Date] = r.Volume
		if r.Date.Before(first) {
			first = r.Date
		}
	}

	var filled []domain.VolumeRecord
	for day := first; !day.After(today); day = day.AddDate(0, 0, 1) {
		filled = append(filled, domain.VolumeRecord{Date: day, Volume: byDay[day]})
	}
	return filled
}

// Compute derives the rolling metrics for a daily series. Records must be
// one per day, oldest first.
func Compute(records []domain.VolumeRecord, lowCutoff float64) []domain.AnalysisRecord {
	volumes := make([]float64, len(records))
	for i, r := range records {
		volumes[i] = r.Volume
	}

	w30 := &window{size: 30, partial: true}
	w90 := &window{size: 90}
	w180 := &window{size: 180}

	out := make([]domain.AnalysisRecord, len(records))
	for i, r := range records {
		rec := domain.AnalysisRecord{Date: r.Date, Volume: r.Volume}

		if res := w30.at(volumes, i, lowCutoff); res.defined {
			rec.Avg30, rec.LowVolumeDays30, rec.High30, rec.ChangeFromHigh30 = res.avg, res.low, res.high, res.change
		}
		if res := w90.at(volumes, i, lowCutoff); res.defined {
			rec.Avg90, rec.LowVolumeDays90, rec.High90, rec.ChangeFromHigh90 = res.avg, res.low, res.high, res.change
		}
		if res := w180.at(volumes, i, lowCutoff); res.defined {
			rec.Avg180, rec.LowVolumeDays180, rec.High180, rec.ChangeFromHigh180 = res.avg, res.low, res.high, res.change
		}

		out[i] = rec
	}
	return out
}

// prepare truncates timestamps to UTC days, drops days after today and
// before the lookback cutoff, sorts oldest first and fills the gaps.
func prepare(records []domain.VolumeRecord, today time.Time, lookbackDays int) []domain.VolumeRecord {
	cutoff := today.AddDate(0, 0, -lookbackDays)

	kept := make([]domain.VolumeRecord, 0, len(records))
	for _, r := range records {
		day := truncateDay(r.Date)
		if day.After(today) || day.Before(cutoff) {
			continue
		}
		kept = append(kept, domain.VolumeRecord{Date: day, Volume: r.Volume})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.Before(kept[j].Date)
	})
	return fillMissingDays(kept, today)
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
