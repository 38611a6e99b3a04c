package sim

// Headways returns the gaps between consecutive times. Fewer than two times
// yield an empty slice.
func Headways(times []float64) []float64 {
	if len(times) < 2 {
		return []float64{}
	}
	out := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		out[i-1] = times[i] - times[i-1]
	}
	return out
}

// HourlyMeanHeadways buckets departures into hours [h*60, (h+1)*60) and
// returns the mean headway inside each bucket, or 0 when a bucket holds
// fewer than two departures.
func HourlyMeanHeadways(departures []float64, hours int) []float64 {
	if hours <= 0 {
		return []float64{}
	}
	out := make([]float64, hours)
	for h := 0; h < hours; h++ {
		start, end := float64(h)*60, float64(h+1)*60
		var inHour []float64
		for _, t := range departures {
			if t >= start && t < end {
				inHour = append(inHour, t)
			}
		}
		out[h] = Mean(Headways(inHour))
	}
	return out
}
