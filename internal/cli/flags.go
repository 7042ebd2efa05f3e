package cli

import (
	"github.com/alexanderramin/estimator/internal/settings"
	"github.com/spf13/pflag"
)

// minutesValue is a pflag.Value holding minutes, entered in the configured
// time unit or with an explicit "h"/"m" suffix.
type minutesValue struct {
	unit func() settings.TimeUnit
	v    *int
}

var _ pflag.Value = (*minutesValue)(nil)

func newMinutesValue(unit func() settings.TimeUnit, p *int) *minutesValue {
	return &minutesValue{unit: unit, v: p}
}

func (m *minutesValue) String() string {
	if m.v == nil {
		return "0"
	}
	return settings.Minutes.Format(*m.v)
}

func (m *minutesValue) Set(s string) error {
	n, err := m.unit().ParseMinutes(s)
	if err != nil {
		return err
	}
	*m.v = n
	return nil
}

func (m *minutesValue) Type() string { return "time" }
