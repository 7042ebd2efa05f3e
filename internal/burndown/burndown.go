// Package burndown projects ideal and actual progress over work days.
package burndown

import (
	"context"
	"math"

	"github.com/alexanderramin/estimator/internal/domain"
	"github.com/alexanderramin/estimator/internal/latest"
)

// Point is one chart sample: a work day number and a percentage.
type Point struct {
	Day   int
	Value int
}

type Input struct {
	EstimatedMinutes  int
	MinutesPerWorkDay int
	Days              []domain.WorkDay
}

type Chart struct {
	EstimatedWorkDays int
	Ideal             []Point
	Actual            []Point
}

// Project computes the ideal series from the estimate and the actual series
// from the logged work days. Day n of the ideal series sits at n*100/days
// percent, rounded half to even. The actual series starts at (0,0) and has
// one point per logged day; days without a recorded snapshot keep their day
// number but add no point.
func Project(in Input) Chart {
	var c Chart
	if in.EstimatedMinutes > 0 && in.MinutesPerWorkDay > 0 {
		c.EstimatedWorkDays = (in.EstimatedMinutes + in.MinutesPerWorkDay - 1) / in.MinutesPerWorkDay
		step := 100.0 / float64(c.EstimatedWorkDays)
		for n := 0; n < c.EstimatedWorkDays; n++ {
			c.Ideal = append(c.Ideal, Point{Day: n, Value: int(math.RoundToEven(float64(n) * step))})
		}
	}

	c.Actual = []Point{{Day: 0, Value: 0}}
	for i, d := range in.Days {
		if d.Snapshot == domain.SnapshotNotRecorded {
			continue
		}
		c.Actual = append(c.Actual, Point{Day: i + 1, Value: d.Snapshot})
	}
	return c
}

// Recalculator recomputes charts in the background, keeping only the latest.
type Recalculator struct {
	runner *latest.Runner[Chart]
}

// NewRecalculator delivers each surviving chart to deliver.
func NewRecalculator(deliver func(Chart)) *Recalculator {
	return &Recalculator{
		runner: latest.New(func(c Chart, err error) {
			if err == nil {
				deliver(c)
			}
		}),
	}
}

// Recalculate supersedes any computation still in flight.
func (r *Recalculator) Recalculate(ctx context.Context, in Input) {
	days := make([]domain.WorkDay, len(in.Days))
	copy(days, in.Days)
	in.Days = days
	r.runner.Submit(ctx, func(ctx context.Context) (Chart, error) {
		if err := ctx.Err(); err != nil {
			return Chart{}, err
		}
		c := Project(in)
		return c, ctx.Err()
	})
}

// Wait blocks until pending computations finish.
func (r *Recalculator) Wait() { r.runner.Wait() }

// Stop cancels pending computations.
func (r *Recalculator) Stop() { r.runner.Stop() }
