package indicators

import (
	"math/rand"

	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
)

// generateRange returns count consecutive values starting at start
func generateRange(start float64, count int) []float64 {
	values := make([]float64, count)
	for i := range values {
		values[i] = start + float64(i)
	}
	return values
}

func generateFlat(value float64, count int) []float64 {
	values := make([]float64, count)
	for i := range values {
		values[i] = value
	}
	return values
}

// generateRandomWalk returns a reproducible noisy price path
func generateRandomWalk(count int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, count)
	price := 100.0
	for i := range values {
		price += (rng.Float64() - 0.5) * 4
		values[i] = price
	}
	return values
}

func generateTestData(closes []float64) []types.OHLC {
	data := make([]types.OHLC, len(closes))
	for i, c := range closes {
		data[i] = types.OHLC{
			Time:   "2024-01-01",
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return data
}

func undefinedPrefix(s Series) int {
	n := 0
	for _, v := range s {
		if v.Valid {
			break
		}
		n++
	}
	return n
}
