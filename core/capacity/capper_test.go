package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kilianp07/dispatchsim/core/asset"
	"github.com/kilianp07/dispatchsim/core/technology"
)

type recordingLogger struct {
	warns, infos int
}

func (l *recordingLogger) Debugf(string, ...any)         {}
func (l *recordingLogger) Debugw(string, map[string]any) {}
func (l *recordingLogger) Infof(string, ...any)          { l.infos++ }
func (l *recordingLogger) Warnf(string, ...any)          { l.warns++ }
func (l *recordingLogger) Errorf(string, ...any)         {}

func fleet(caps ...float64) []asset.Asset {
	tech := &technology.Technology{Name: "t", CapitalCost: 100, Life: 10}
	out := make([]asset.Asset, len(caps))
	for i, c := range caps {
		out[i] = asset.NewGenerator(string(rune('a'+i)), c, tech, nil)
	}
	return out
}

func total(assets []asset.Asset) float64 {
	var s float64
	for _, a := range assets {
		s += a.FirmCapacity()
	}
	return s
}

func TestProportionalCapper(t *testing.T) {
	assets := fleet(60, 30, 10)
	log := &recordingLogger{}
	res := NewProportionalCapper(log).Cap(assets, 20)
	assert.InDelta(t, 80.0, total(assets), 1e-9)
	assert.InDelta(t, 48.0, assets[0].Capacity(), 1e-9)
	assert.InDelta(t, 24.0, assets[1].Capacity(), 1e-9)
	assert.InDelta(t, 8.0, assets[2].Capacity(), 1e-9)
	assert.InDelta(t, 20.0, res.Removed, 1e-9)
	assert.False(t, res.Clamped())
	assert.Equal(t, 1, log.infos)
}

func TestProportionalCapper_ExceedanceAboveTotalClamps(t *testing.T) {
	assets := fleet(5, 5)
	log := &recordingLogger{}
	res := NewProportionalCapper(log).Cap(assets, 50)
	for _, a := range assets {
		if a.Capacity() < 0 {
			t.Fatalf("negative capacity for %s", a.Name())
		}
	}
	assert.Equal(t, 0.0, total(assets))
	assert.True(t, res.Clamped())
	assert.InDelta(t, 40.0, res.Unmet(), 1e-9)
	assert.Equal(t, 1, log.warns)
}

func TestProportionalCapper_FirmFactor(t *testing.T) {
	assets := fleet(100, 100)
	assets[1].(*asset.Generator).SetFirmFactor(0.5)
	NewProportionalCapper(nil).Cap(assets, 30)
	// firm 100 + 50, cut 20 + 10
	assert.InDelta(t, 80.0, assets[0].Capacity(), 1e-9)
	assert.InDelta(t, 80.0, assets[1].Capacity(), 1e-9)
	assert.InDelta(t, 120.0, total(assets), 1e-9)
}

func TestPriorityCapper(t *testing.T) {
	assets := fleet(50, 30, 10)
	res := NewPriorityCapper(&recordingLogger{}).Cap(assets, 25)
	assert.Equal(t, 50.0, assets[0].Capacity())
	assert.InDelta(t, 15.0, assets[1].Capacity(), 1e-9)
	assert.Equal(t, 0.0, assets[2].Capacity())
	assert.InDelta(t, 25.0, res.Removed, 1e-9)
	if assert.Len(t, res.Adjustments, 2) {
		assert.Equal(t, "c", res.Adjustments[0].Name)
		assert.True(t, res.Adjustments[0].Clamped)
		assert.False(t, res.Adjustments[1].Clamped)
	}
}

func TestCappers_NoExceedance(t *testing.T) {
	for _, c := range []Capper{NewProportionalCapper(nil), NewPriorityCapper(nil), NopCapper{}} {
		assets := fleet(10, 20)
		res := c.Cap(assets, 0)
		assert.Equal(t, 30.0, total(assets), c.Name())
		assert.Empty(t, res.Adjustments, c.Name())
		assert.Zero(t, res.Removed, c.Name())
	}
}
