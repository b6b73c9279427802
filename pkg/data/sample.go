package data

import (
	"os"
	"path/filepath"
	"strings"
)

// sampleRows is a small daily history, enough to warm up SMA(20) and EMA(20)
var sampleRows = []string{
	"2024-01-01,100.00,105.00,99.00,103.00,1000000",
	"2024-01-02,103.00,107.00,102.00,106.00,1200000",
	"2024-01-03,106.00,108.00,104.00,105.00,1100000",
	"2024-01-04,105.00,110.00,105.00,109.00,1300000",
	"2024-01-05,109.00,112.00,108.00,111.00,1400000",
	"2024-01-08,111.00,113.00,109.00,110.00,1250000",
	"2024-01-09,110.00,111.00,107.00,108.00,1150000",
	"2024-01-10,108.00,109.00,105.00,106.00,1050000",
	"2024-01-11,106.00,108.00,104.00,107.00,1100000",
	"2024-01-12,107.00,110.00,106.00,109.00,1200000",
	"2024-01-15,109.00,111.00,108.00,110.00,1150000",
	"2024-01-16,110.00,112.00,109.00,111.00,1200000",
	"2024-01-17,111.00,113.00,110.00,112.00,1250000",
	"2024-01-18,112.00,114.00,111.00,113.00,1300000",
	"2024-01-19,113.00,115.00,112.00,114.00,1350000",
	"2024-01-22,114.00,116.00,113.00,115.00,1400000",
	"2024-01-23,115.00,117.00,114.00,116.00,1450000",
	"2024-01-24,116.00,118.00,115.00,117.00,1500000",
	"2024-01-25,117.00,119.00,116.00,118.00,1550000",
	"2024-01-26,118.00,120.00,117.00,119.00,1600000",
}

// SampleCSV returns an example input file in the expected format
func SampleCSV() string {
	header := strings.Join(RequiredColumns, ",")
	return strings.Join(append([]string{header}, sampleRows...), "\n")
}

// WriteSampleCSV writes SampleCSV to path, creating parent directories
func WriteSampleCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(SampleCSV()+"\n"), 0644)
}
