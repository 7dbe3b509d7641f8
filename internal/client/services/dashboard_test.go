package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/projectdesk/internal/client/client"
	"github.com/dmitrijs2005/projectdesk/internal/client/models"
	"github.com/dmitrijs2005/projectdesk/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRefresher returns queued results; a non-nil gate blocks the call
// until it is closed.
type scriptedRefresher struct {
	results []refreshResult
	calls   int
}

type refreshResult struct {
	snap    *Snapshot
	err     error
	started chan struct{}
	gate    chan struct{}
}

func (s *scriptedRefresher) Refresh(ctx context.Context, sess models.Session) (*Snapshot, error) {
	r := s.results[s.calls]
	s.calls++
	if r.started != nil {
		close(r.started)
	}
	if r.gate != nil {
		<-r.gate
	}
	return r.snap, r.err
}

func TestDashboard_BeginApply(t *testing.T) {
	d := NewDashboard(&scriptedRefresher{}, logging.Discard())
	a, b := &Snapshot{}, &Snapshot{}

	s1 := d.Begin()
	s2 := d.Begin()
	assert.Greater(t, s2, s1)

	assert.False(t, d.Apply(s1, a))
	assert.Nil(t, d.Snapshot())
	assert.True(t, d.Apply(s2, b))
	assert.Same(t, b, d.Snapshot())
}

func TestDashboard_FailedRefreshKeepsPrevious(t *testing.T) {
	first := &Snapshot{Role: models.RoleStudent}
	r := &scriptedRefresher{results: []refreshResult{
		{snap: first},
		{err: client.ErrUnavailable},
	}}
	d := NewDashboard(r, logging.Discard())

	got, err := d.Refresh(context.Background(), student)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = d.Refresh(context.Background(), student)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Nil(t, got)
	assert.Same(t, first, d.Snapshot())
}

func TestDashboard_PartialRefreshIsApplied(t *testing.T) {
	partial := &Snapshot{Failed: []Collection{CollectionMine}}
	r := &scriptedRefresher{results: []refreshResult{{snap: partial, err: client.ErrUnavailable}}}
	d := NewDashboard(r, logging.Discard())

	got, err := d.Refresh(context.Background(), student)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Same(t, partial, got)
	assert.Same(t, partial, d.Snapshot())
}

func TestDashboard_UnauthorizedResets(t *testing.T) {
	r := &scriptedRefresher{results: []refreshResult{
		{snap: &Snapshot{}},
		{err: client.ErrUnauthorized},
	}}
	d := NewDashboard(r, logging.Discard())

	_, err := d.Refresh(context.Background(), student)
	require.NoError(t, err)
	require.NotNil(t, d.Snapshot())

	_, err = d.Refresh(context.Background(), student)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, d.Snapshot())
}

func TestDashboard_StaleResultIsDropped(t *testing.T) {
	older, newer := &Snapshot{Role: models.RoleTeacher}, &Snapshot{Role: models.RoleTeacher}
	started := make(chan struct{})
	gate := make(chan struct{})
	r := &scriptedRefresher{results: []refreshResult{
		{snap: older, started: started, gate: gate},
		{snap: newer},
	}}
	d := NewDashboard(r, logging.Discard())

	type outcome struct {
		snap *Snapshot
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		s, err := d.Refresh(context.Background(), teacher)
		done <- outcome{s, err}
	}()
	<-started

	got, err := d.Refresh(context.Background(), teacher)
	require.NoError(t, err)
	assert.Same(t, newer, got)

	close(gate)
	res := <-done
	require.ErrorIs(t, res.err, ErrSuperseded)
	assert.Nil(t, res.snap)
	assert.Same(t, newer, d.Snapshot())
}

func TestDashboard_ResetInvalidatesInFlight(t *testing.T) {
	d := NewDashboard(&scriptedRefresher{}, logging.Discard())

	seq := d.Begin()
	d.Reset()
	assert.False(t, d.Apply(seq, &Snapshot{}))
	assert.Nil(t, d.Snapshot())
}
