package dsp

// BinMethod folds one more bin value into the running value of a band.
// count is the number of bins in the band.
type BinMethod func(count int, current, new float64) float64

// MaxSampleValue returns the maximum value of all the bins. This is the default.
func MaxSampleValue() BinMethod {
	return func(_ int, current, new float64) float64 {
		if current < new {
			return new
		}
		return current
	}
}

// AverageSamples averages all the bins together.
func AverageSamples() BinMethod {
	return func(count int, current, new float64) float64 {
		return current + (new / float64(count))
	}
}

// SumSamples sums all the bins together.
func SumSamples() BinMethod {
	return func(_ int, current, new float64) float64 {
		return current + new
	}
}

// BinMethodByName looks up a bin method. The empty name is max.
func BinMethodByName(name string) (BinMethod, bool) {
	switch name {
	case "", "max":
		return MaxSampleValue(), true
	case "avg", "average":
		return AverageSamples(), true
	case "sum":
		return SumSamples(), true
	default:
		return nil, false
	}
}

// reduce runs method over a band.
func reduce(method BinMethod, band []float64) float64 {
	value := 0.0
	count := len(band)

	for _, v := range band {
		value = method(count, value, v)
	}

	return value
}
