package metrics

import (
	"math"

	"github.com/pwasik/fuzzdrive/internal/drive"
)

// SettlingTime reports the first time after which speed stays within the
// band around the target for the remainder of the run. NaN if the speed
// never settles.
type SettlingTime struct {
	band    float64
	settled float64
	inBand  bool
	seen    bool
}

// NewSettlingTime returns the metric with the given tolerance band.
func NewSettlingTime(band float64) *SettlingTime {
	return &SettlingTime{band: band}
}

func (m *SettlingTime) Name() string {
	return "settling_time"
}

func (m *SettlingTime) Observe(s drive.Sample) {
	m.seen = true
	if math.Abs(s.Speed-s.Target) <= m.band {
		if !m.inBand {
			m.inBand = true
			m.settled = s.Time
		}
		return
	}
	m.inBand = false
}

func (m *SettlingTime) Value() float64 {
	if !m.seen || !m.inBand {
		return math.NaN()
	}
	return m.settled
}

func (m *SettlingTime) Reset() {
	m.settled = 0
	m.inBand = false
	m.seen = false
}
