package heatmap

// Dataset and per-cell values derived from it.

import (
	"errors"
	"strconv"
)

var ErrEmptyDataset = errors.New("dataset has no monthly variance records")

var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Dataset is the fetched document: a base temperature and per-month variances.
type Dataset struct {
	BaseTemperature float64    `json:"baseTemperature"`
	MonthlyVariance []Variance `json:"monthlyVariance"`
}

type Variance struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Variance float64 `json:"variance"`
}

// Cell is one plotted record. Month stays 1-based as in the source data.
type Cell struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Variance float64 `json:"variance"`
	Temp     float64 `json:"temp"`
}

// MonthIndex is the 0-based band index.
func (c Cell) MonthIndex() int { return c.Month - 1 }

func (c Cell) MonthName() string {
	if c.Month < 1 || c.Month > 12 {
		return ""
	}
	return MonthNames[c.Month-1]
}

// DeriveCells maps every record to a Cell with Temp = base + variance,
// preserving source order.
func DeriveCells(ds *Dataset) []Cell {
	if ds == nil {
		return nil
	}
	cells := make([]Cell, 0, len(ds.MonthlyVariance))
	for _, v := range ds.MonthlyVariance {
		cells = append(cells, Cell{
			Year:     v.Year,
			Month:    v.Month,
			Variance: v.Variance,
			Temp:     ds.BaseTemperature + v.Variance,
		})
	}
	return cells
}

// YearRange returns the first and last year present.
func YearRange(cells []Cell) (start, end int) {
	for i, c := range cells {
		if i == 0 || c.Year < start {
			start = c.Year
		}
		if i == 0 || c.Year > end {
			end = c.Year
		}
	}
	return start, end
}

// TempRange returns the observed min and max temperature.
func TempRange(cells []Cell) (min, max float64) {
	for i, c := range cells {
		if i == 0 || c.Temp < min {
			min = c.Temp
		}
		if i == 0 || c.Temp > max {
			max = c.Temp
		}
	}
	return min, max
}

// FormatNumber renders v the way a browser prints a number: shortest
// round-trip representation, no exponent for ordinary magnitudes.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
