package arena

import (
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
)

func TestHistoryKeepsMostRecentWindow(t *testing.T) {
	s := &Session{}
	for i := 0; i < historyWindow+10; i++ {
		s.pushHistory(Position{X: float64(i), Ts: int64(i)})
	}
	assert.Equal(t, historyWindow, s.histLen)
	assert.Equal(t, int64(10), s.at(0).Ts)
	assert.Equal(t, int64(historyWindow+9), s.at(s.histLen-1).Ts)
}

func TestPositionAtInterpolatesBetweenSamples(t *testing.T) {
	s := &Session{}
	s.pushHistory(Position{X: 0, Y: 0, Ts: 0})
	s.pushHistory(Position{X: 100, Y: 0, Ts: 100})

	p, ok := s.positionAt(40)
	assert.Assert(t, ok)
	assert.Equal(t, 40.0, p.X)
	assert.Equal(t, 0.0, p.Y)
}

func TestPositionAtDegeneratesToNearestSample(t *testing.T) {
	s := &Session{}
	s.pushHistory(Position{X: 10, Y: 20, Ts: 100})
	s.pushHistory(Position{X: 30, Y: 40, Ts: 200})

	before, ok := s.positionAt(50)
	assert.Assert(t, ok)
	assert.Equal(t, 10.0, before.X)

	after, ok := s.positionAt(500)
	assert.Assert(t, ok)
	assert.Equal(t, 30.0, after.X)
	assert.Equal(t, 40.0, after.Y)
}

func TestPositionAtFallsBackToLastState(t *testing.T) {
	s := &Session{}
	_, ok := s.positionAt(100)
	assert.Assert(t, !ok)

	s.lastState = Position{X: 7, Y: 8, Ts: 50}
	s.hasState = true
	p, ok := s.positionAt(100)
	assert.Assert(t, ok)
	assert.Equal(t, 7.0, p.X)
	assert.Equal(t, 8.0, p.Y)
}

func TestDrainIsFIFOAndBounded(t *testing.T) {
	s := &Session{}
	for i := 0; i < drainBatch+13; i++ {
		s.enqueue([]byte(fmt.Sprintf("ev-%d", i)))
	}

	first := s.drain(drainBatch)
	assert.Equal(t, drainBatch, len(first))
	assert.Equal(t, "ev-0", string(first[0]))
	assert.Equal(t, fmt.Sprintf("ev-%d", drainBatch-1), string(first[len(first)-1]))

	rest := s.drain(drainBatch)
	assert.Equal(t, 13, len(rest))
	assert.Equal(t, fmt.Sprintf("ev-%d", drainBatch), string(rest[0]))

	assert.Equal(t, 0, len(s.drain(drainBatch)))
}
