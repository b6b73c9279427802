package types

// OHLC is one time step of price data. Time is an opaque label; only the
// position of a record in its sequence carries ordering.
type OHLC struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Closes projects the close prices of data in order
func Closes(data []OHLC) []float64 {
	closes := make([]float64, len(data))
	for i, d := range data {
		closes[i] = d.Close
	}
	return closes
}

// AverageVolume returns the mean volume, or 0 for empty data
func AverageVolume(data []OHLC) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range data {
		sum += d.Volume
	}
	return sum / float64(len(data))
}
