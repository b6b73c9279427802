package indicators

// SeriesIndicator computes a full indicator series over a price sequence.
// Implementations are stateless between calls.
type SeriesIndicator interface {
	Calculate(values []float64) Series
	GetName() string
	GetRequiredPeriods() int
}
