package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEMA(t *testing.T) {
	ema := NewEMA(9)

	assert.Equal(t, 9, ema.period)
	assert.InDelta(t, 0.2, ema.Multiplier(), 1e-12)
}

func TestEMA_Calculate_InsufficientData(t *testing.T) {
	result := NewEMA(5).Calculate(generateRange(1, 4))

	require.Len(t, result, 4)
	assert.Equal(t, 4, undefinedPrefix(result))
}

func TestEMA_Calculate_TwoPoints(t *testing.T) {
	result := NewEMA(2).Calculate([]float64{100, 90})

	require.Len(t, result, 2)
	assert.False(t, result[0].Valid)
	assert.True(t, result[1].Valid)
	assert.Equal(t, 95.0, result[1].Value)
}

func TestEMA_Calculate_SeedIsMeanOfFirstPeriod(t *testing.T) {
	values := generateRandomWalk(50, 3)
	result := NewEMA(10).Calculate(values)

	sum := 0.0
	for _, v := range values[:10] {
		sum += v
	}
	assert.Equal(t, 9, undefinedPrefix(result))
	assert.Equal(t, sum/10, result[9].Value)
}

func TestEMA_Calculate_Recurrence(t *testing.T) {
	result := NewEMA(2).Calculate([]float64{1, 2, 3, 4})

	assert.InDelta(t, 1.5, result[1].Value, 1e-12)
	assert.InDelta(t, 2.5, result[2].Value, 1e-12)
	assert.InDelta(t, 3.5, result[3].Value, 1e-12)
}

func TestEMA_CalculateSeries_UndefinedPrefix(t *testing.T) {
	input := Series{Undefined(), Undefined(), Defined(2), Defined(4), Defined(6)}
	result := NewEMA(2).CalculateSeries(input)

	require.Len(t, result, 5)
	assert.Equal(t, 3, undefinedPrefix(result))
	assert.Equal(t, 3.0, result[3].Value)
	assert.InDelta(t, 5.0, result[4].Value, 1e-12)
}

func TestEMA_CalculateSeries_TooFewDefined(t *testing.T) {
	input := Series{Undefined(), Defined(2), Defined(4)}
	result := NewEMA(3).CalculateSeries(input)

	require.Len(t, result, 3)
	assert.Equal(t, 0, result.CountDefined())
}

func TestEMA_Calculate_FlatStaysFlat(t *testing.T) {
	result := NewEMA(5).Calculate(generateFlat(42, 20))
	for i := 4; i < 20; i++ {
		assert.Equal(t, 42.0, result[i].Value)
	}
}

func TestEMA_InterfaceCompliance(t *testing.T) {
	var _ SeriesIndicator = NewEMA(5)
	assert.Equal(t, "EMA", NewEMA(5).GetName())
	assert.Equal(t, 5, NewEMA(5).GetRequiredPeriods())
}

func BenchmarkEMA_Calculate(b *testing.B) {
	ema := NewEMA(20)
	values := generateRandomWalk(1000, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ema.Calculate(values)
	}
}
