package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/mock"
)

type recordSink struct {
	count int
	err   error
}

func (r *recordSink) RecordRun(RunResult) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordCapacityCap(CapacityCapEvent) error {
	r.count++
	return nil
}

// TestMultiSink ensures events are forwarded to all sinks.
func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2, NopSink{})
	if err := m.RecordRun(RunResult{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordCapacityCap(CapacityCapEvent{}); err != nil {
		t.Fatalf("record cap: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("results not forwarded")
	}
}

func TestMultiSink_ContinuesAfterError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	err := NewMultiSink(s1, s2).RecordRun(RunResult{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error got %v", err)
	}
	if s2.count != 1 {
		t.Fatalf("second sink skipped")
	}
}

func TestFloat(t *testing.T) {
	if Float(math.NaN()) != nil {
		t.Fatal("NaN should map to nil")
	}
	if p := Float(2); p == nil || *p != 2 {
		t.Fatalf("unexpected %v", p)
	}
}

type mockSink struct{ mock.Mock }

func (m *mockSink) RecordRun(res RunResult) error { return m.Called(res).Error(0) }

func (m *mockSink) Close() error { return m.Called().Error(0) }

func TestMultiSink_CloseOnlyClosers(t *testing.T) {
	closer := &mockSink{}
	closer.On("RecordRun", mock.AnythingOfType("metrics.RunResult")).Return(nil).Once()
	closer.On("Close").Return(errors.New("broken pipe")).Once()

	m := NewMultiSink(closer, &recordSink{})
	if err := m.RecordRun(RunResult{RunID: "r1"}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.Close(); err == nil {
		t.Fatal("expected close error")
	}
	closer.AssertExpectations(t)
}
