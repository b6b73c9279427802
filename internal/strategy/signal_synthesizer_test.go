package strategy

import (
	"math/rand"
	"testing"

	"github.com/ducminhle1904/ohlc-signal-analyzer/internal/indicators"
	"github.com/ducminhle1904/ohlc-signal-analyzer/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateTestData(closes ...float64) []types.OHLC {
	data := make([]types.OHLC, len(closes))
	for i, c := range closes {
		data[i] = types.OHLC{
			Time:   "t" + string(rune('a'+i%26)),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 100,
		}
	}
	return data
}

func ascending(start float64, count int) []float64 {
	values := make([]float64, count)
	for i := range values {
		values[i] = start + float64(i)
	}
	return values
}

// emptyResult returns a result of length n with every entry undefined
func emptyResult(n int) indicators.Result {
	blank := func() indicators.Series { return make(indicators.Series, n) }
	return indicators.Result{
		SMA: blank(),
		EMA: blank(),
		RSI: blank(),
		MACD: indicators.MACDResult{
			MACD:      blank(),
			Signal:    blank(),
			Histogram: blank(),
		},
	}
}

func withMACD(r indicators.Result, i int, macd, signal, prevHist, hist float64) indicators.Result {
	r.MACD.MACD[i] = indicators.Defined(macd)
	r.MACD.Signal[i] = indicators.Defined(signal)
	r.MACD.Histogram[i-1] = indicators.Defined(prevHist)
	r.MACD.Histogram[i] = indicators.Defined(hist)
	return r
}

func TestSignalSynthesizer_AscendingTwenty(t *testing.T) {
	data := generateTestData(ascending(10, 20)...)
	result := indicators.CalculateAll(data, indicators.DefaultConfig())

	signal := NewSignalSynthesizer().Generate(data, result)

	assert.Equal(t, SignalCall, signal.Type)
	assert.Equal(t, 67, signal.Confidence)
	assert.Equal(t, 29.0, signal.Price)
	assert.Equal(t, data[19].Time, signal.Time)
	assert.Equal(t, []string{
		"RSI at 100.00 (overbought)",
		"Price above SMA (19.50)",
		"Price above EMA (19.50)",
	}, signal.Reasons)
	assert.Equal(t, 2, signal.BullishVotes)
	assert.Equal(t, 1, signal.BearishVotes)
}

func TestSignalSynthesizer_SingleRecord(t *testing.T) {
	data := generateTestData(100)
	result := indicators.CalculateAll(data, indicators.DefaultConfig())

	signal := NewSignalSynthesizer().Generate(data, result)

	assert.Equal(t, SignalNeutral, signal.Type)
	assert.Equal(t, 0, signal.Confidence)
	assert.Equal(t, []string{ReasonInsufficient}, signal.Reasons)
	assert.Equal(t, 100.0, signal.Price)
}

func TestSignalSynthesizer_SingleRecordSkipsHistogramRules(t *testing.T) {
	data := generateTestData(100)
	result := emptyResult(1)
	result.MACD.MACD[0] = indicators.Defined(3)
	result.MACD.Signal[0] = indicators.Defined(1)
	result.MACD.Histogram[0] = indicators.Defined(2)
	result.SMA[0] = indicators.Defined(90)

	signal := NewSignalSynthesizer().Generate(data, result)

	assert.Equal(t, SignalCall, signal.Type)
	assert.Equal(t, 100, signal.Confidence)
	assert.Equal(t, []string{"Price above SMA (90.00)"}, signal.Reasons)
}

func TestSignalSynthesizer_EmptyInput(t *testing.T) {
	signal := NewSignalSynthesizer().Generate(nil, indicators.Result{})

	assert.Equal(t, SignalNeutral, signal.Type)
	assert.Equal(t, 0, signal.Confidence)
	assert.Equal(t, "", signal.Time)
}

func TestSignalSynthesizer_RSIRules(t *testing.T) {
	tests := []struct {
		name   string
		rsi    float64
		want   SignalType
		reason string
	}{
		{"oversold", 25.456, SignalCall, "RSI at 25.46 (oversold)"},
		{"overbought", 75, SignalPut, "RSI at 75.00 (overbought)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := emptyResult(2)
			result.RSI[1] = indicators.Defined(tt.rsi)

			signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)
			assert.Equal(t, tt.want, signal.Type)
			assert.Equal(t, 100, signal.Confidence)
			assert.Equal(t, []string{tt.reason}, signal.Reasons)
		})
	}
}

func TestSignalSynthesizer_RSIBoundariesCastNoVote(t *testing.T) {
	for _, rsi := range []float64{30, 50, 70} {
		result := emptyResult(2)
		result.RSI[1] = indicators.Defined(rsi)

		signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)
		assert.Equal(t, SignalNeutral, signal.Type, "rsi %v", rsi)
		assert.Equal(t, 0, signal.Confidence)
	}
}

func TestSignalSynthesizer_BullishCrossover(t *testing.T) {
	result := withMACD(emptyResult(2), 1, 3, 1, -1, 2)

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)

	assert.Equal(t, SignalCall, signal.Type)
	assert.Equal(t, 3, signal.BullishVotes)
	assert.Equal(t, 100, signal.Confidence)
	assert.Equal(t, []string{
		"MACD crossed above signal line (bullish crossover)",
		"MACD histogram rising (positive momentum)",
	}, signal.Reasons)
}

func TestSignalSynthesizer_BearishCrossover(t *testing.T) {
	result := withMACD(emptyResult(2), 1, 1, 3, 1, -2)

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)

	assert.Equal(t, SignalPut, signal.Type)
	assert.Equal(t, 3, signal.BearishVotes)
	assert.Equal(t, []string{
		"MACD crossed below signal line (bearish crossover)",
		"MACD histogram falling (negative momentum)",
	}, signal.Reasons)
}

func TestSignalSynthesizer_MomentumWithoutCrossover(t *testing.T) {
	result := withMACD(emptyResult(3), 2, 5, 3, 1, 2)

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2, 3), result)

	assert.Equal(t, 1, signal.BullishVotes)
	assert.Equal(t, []string{"MACD histogram rising (positive momentum)"}, signal.Reasons)
}

func TestSignalSynthesizer_MACDRulesNeedSignalLine(t *testing.T) {
	result := withMACD(emptyResult(2), 1, 3, 1, -1, 2)
	result.MACD.Signal[1] = indicators.Undefined()

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)

	assert.Equal(t, SignalNeutral, signal.Type)
	assert.Equal(t, 0, signal.Confidence)
}

func TestSignalSynthesizer_CrossoverWeight(t *testing.T) {
	// bullish crossover (+2) against falling-price votes on SMA and EMA (+2)
	result := withMACD(emptyResult(2), 1, 0.5, 0.1, -0.5, 0.4)
	result.MACD.Histogram[0] = indicators.Defined(-0.5)
	result.SMA[1] = indicators.Defined(10)
	result.EMA[1] = indicators.Defined(10)

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)

	// momentum also fires: 0.4 > -0.5 and 0.4 > 0
	assert.Equal(t, 3, signal.BullishVotes)
	assert.Equal(t, 2, signal.BearishVotes)
	assert.Equal(t, SignalCall, signal.Type)
	assert.Equal(t, 60, signal.Confidence)
}

func TestSignalSynthesizer_Tie(t *testing.T) {
	result := emptyResult(2)
	result.RSI[1] = indicators.Defined(80)
	result.SMA[1] = indicators.Defined(1)

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)

	assert.Equal(t, SignalNeutral, signal.Type)
	assert.Equal(t, 50, signal.Confidence)
	assert.Equal(t, []string{
		"RSI at 80.00 (overbought)",
		"Price above SMA (1.00)",
		ReasonConflicting,
	}, signal.Reasons)
}

func TestSignalSynthesizer_PriceEqualToAverage(t *testing.T) {
	result := emptyResult(2)
	result.SMA[1] = indicators.Defined(2)
	result.EMA[1] = indicators.Defined(3)

	signal := NewSignalSynthesizer().Generate(generateTestData(1, 2), result)

	assert.Equal(t, 0, signal.BullishVotes)
	assert.Equal(t, 1, signal.BearishVotes)
	assert.Equal(t, []string{"Price below EMA (3.00)"}, signal.Reasons)
}

func TestSignalSynthesizer_ConfidenceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	synth := NewSignalSynthesizer()

	for n := 1; n <= 120; n++ {
		closes := make([]float64, n)
		price := 100.0
		for i := range closes {
			price += (rng.Float64() - 0.5) * 5
			closes[i] = price
		}
		data := generateTestData(closes...)
		signal := synth.Generate(data, indicators.CalculateAll(data, indicators.DefaultConfig()))

		require.GreaterOrEqual(t, signal.Confidence, 0)
		require.LessOrEqual(t, signal.Confidence, 100)
		require.NotEmpty(t, signal.Reasons)

		switch {
		case signal.BullishVotes+signal.BearishVotes == 0:
			assert.Equal(t, 0, signal.Confidence)
		case signal.BullishVotes == signal.BearishVotes:
			assert.Equal(t, 50, signal.Confidence)
			assert.Equal(t, SignalNeutral, signal.Type)
		case signal.BullishVotes > signal.BearishVotes:
			assert.Equal(t, SignalCall, signal.Type)
		default:
			assert.Equal(t, SignalPut, signal.Type)
		}
	}
}

func TestSignalSynthesizer_InterfaceCompliance(t *testing.T) {
	var _ Strategy = NewSignalSynthesizer()
	assert.Equal(t, "Indicator Vote", NewSignalSynthesizer().GetName())
}
