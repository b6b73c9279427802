package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMACD(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	assert.NotNil(t, macd)
	assert.Equal(t, 12, macd.fastPeriod)
	assert.Equal(t, 26, macd.slowPeriod)
	assert.Equal(t, 9, macd.signalPeriod)
}

func TestMACD_Calculate_WarmupBoundaries(t *testing.T) {
	result := NewMACD(12, 26, 9).Calculate(generateRandomWalk(60, 21))

	require.Len(t, result.MACD, 60)
	require.Len(t, result.Signal, 60)
	require.Len(t, result.Histogram, 60)

	assert.Equal(t, 25, result.MACD.FirstDefined())
	assert.Equal(t, 25+9-1, undefinedPrefix(result.Signal))
	assert.Equal(t, 33, result.Histogram.FirstDefined())
	assert.Equal(t, 60-33, result.Histogram.CountDefined())
}

func TestMACD_Calculate_InsufficientData(t *testing.T) {
	result := NewMACD(12, 26, 9).Calculate(generateRange(1, 20))

	require.Len(t, result.MACD, 20)
	assert.Equal(t, 0, result.MACD.CountDefined())
	assert.Equal(t, 0, result.Signal.CountDefined())
	assert.Equal(t, 0, result.Histogram.CountDefined())
}

func TestMACD_Calculate_TooFewMACDValuesForSignal(t *testing.T) {
	// 30 records leave 5 defined MACD values, fewer than the signal period
	result := NewMACD(12, 26, 9).Calculate(generateRandomWalk(30, 2))

	assert.Equal(t, 5, result.MACD.CountDefined())
	require.Len(t, result.Signal, 30)
	assert.Equal(t, 0, result.Signal.CountDefined())
	assert.Equal(t, 0, result.Histogram.CountDefined())
	assert.False(t, result.Signal.At(29).Valid)
}

func TestMACD_Calculate_SignalSeedIsMeanOfFirstMACDValues(t *testing.T) {
	result := NewMACD(12, 26, 9).Calculate(generateRandomWalk(60, 4))

	sum := 0.0
	for i := 25; i < 34; i++ {
		sum += result.MACD[i].Value
	}
	assert.Equal(t, sum/9, result.Signal[33].Value)
}

func TestMACD_Calculate_LineIsFastMinusSlow(t *testing.T) {
	values := generateRandomWalk(60, 9)
	result := NewMACD(12, 26, 9).Calculate(values)
	fast := NewEMA(12).Calculate(values)
	slow := NewEMA(26).Calculate(values)

	for i := 25; i < 60; i++ {
		assert.Equal(t, fast[i].Value-slow[i].Value, result.MACD[i].Value)
	}
	for i := 33; i < 60; i++ {
		assert.Equal(t, result.MACD[i].Value-result.Signal[i].Value, result.Histogram[i].Value)
	}
}

func TestMACD_Calculate_SmallPeriods(t *testing.T) {
	result := NewMACD(2, 3, 2).Calculate(generateRange(1, 6))

	assert.Equal(t, 2, result.MACD.FirstDefined())
	assert.Equal(t, 3, result.Signal.FirstDefined())
	assert.Equal(t, 3, result.Histogram.FirstDefined())
}

func TestMACD_Calculate_RisingTrend(t *testing.T) {
	result := NewMACD(12, 26, 9).Calculate(generateRange(100, 50))

	assert.Greater(t, result.MACD.Last().Value, 0.0)
}

func TestMACD_Calculate_FallingTrend(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 200 - float64(i)
	}
	result := NewMACD(12, 26, 9).Calculate(values)

	assert.Less(t, result.MACD.Last().Value, 0.0)
}

func TestMACD_Calculate_FlatTrend(t *testing.T) {
	result := NewMACD(12, 26, 9).Calculate(generateFlat(100, 50))

	assert.Equal(t, 0.0, result.MACD.Last().Value)
	assert.Equal(t, 0.0, result.Histogram.Last().Value)
}

func TestMACD_ShouldBuy_BullishCrossover(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	assert.True(t, macd.ShouldBuy(10, 5, -1, 5))
	assert.False(t, macd.ShouldBuy(10, 5, 1, 5), "no crossover when histogram was already positive")
	assert.False(t, macd.ShouldBuy(5, 10, -1, -5))
}

func TestMACD_ShouldSell_BearishCrossover(t *testing.T) {
	macd := NewMACD(12, 26, 9)

	assert.True(t, macd.ShouldSell(5, 10, 1, -5))
	assert.False(t, macd.ShouldSell(5, 10, -1, -5))
}

func TestMACD_GetName(t *testing.T) {
	assert.Equal(t, "MACD", NewMACD(12, 26, 9).GetName())
}

func TestMACD_GetRequiredPeriods(t *testing.T) {
	assert.Equal(t, 34, NewMACD(12, 26, 9).GetRequiredPeriods())
}

func BenchmarkMACD_Calculate(b *testing.B) {
	macd := NewMACD(12, 26, 9)
	values := generateRandomWalk(1000, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = macd.Calculate(values)
	}
}
