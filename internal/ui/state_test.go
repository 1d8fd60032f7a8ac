package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/equity-insight/internal/research"
	"github.com/jonathan/equity-insight/internal/types"
)

func TestSubmitStartsLoading(t *testing.T) {
	s := Idle().Submit("Acme Corp")

	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Equal(t, "Acme Corp", s.Query)
}

func TestSubmitWhileLoadingIgnored(t *testing.T) {
	s := Idle().Submit("Acme Corp")
	again := s.Submit("Other Corp")

	assert.Equal(t, s, again, "at most one fetch may be in flight")
}

func TestSubmitDiscardsPreviousReport(t *testing.T) {
	report := &types.Report{}
	s := Idle().Submit("Acme Corp").Settled(report, nil)
	assert.Equal(t, PhaseShowing, s.Phase)

	s = s.Submit("Other Corp")
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.Nil(t, s.Report, "previous report is discarded, not reused")
}

func TestSettledSuccess(t *testing.T) {
	report := &types.Report{Banner: types.Banner{CompanyName: "Acme Corp"}}

	s := Idle().Submit("Acme Corp").Settled(report, nil)

	assert.Equal(t, PhaseShowing, s.Phase)
	assert.Same(t, report, s.Report)
	assert.Empty(t, s.Message)
}

func TestSettledFailureCarriesUserMessage(t *testing.T) {
	err := &research.ContentBlockedError{Reason: "SAFETY"}

	s := Idle().Submit("Acme Corp").Settled(nil, err)

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, research.UserMessage(err), s.Message)
	assert.Nil(t, s.Report)
}

func TestSettledOutsideLoadingIgnored(t *testing.T) {
	states := []State{
		Idle(),
		Idle().Submit("x").Settled(nil, errors.New("boom")),
		Idle().Submit("x").Settled(&types.Report{}, nil),
	}

	for _, s := range states {
		assert.Equal(t, s, s.Settled(&types.Report{}, nil), "settle in phase %s must be a no-op", s.Phase)
	}
}

func TestBack(t *testing.T) {
	errState := Idle().Submit("x").Settled(nil, errors.New("boom"))
	assert.Equal(t, Idle(), errState.Back())

	shown := Idle().Submit("x").Settled(&types.Report{}, nil)
	assert.Equal(t, Idle(), shown.Back())

	loading := Idle().Submit("x")
	assert.Equal(t, loading, loading.Back(), "no cancellation while loading")

	assert.Equal(t, Idle(), Idle().Back())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "showing", PhaseShowing.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
