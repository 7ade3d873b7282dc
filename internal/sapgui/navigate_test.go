package sapgui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactions(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)

	info, err := s.Info()
	require.NoError(t, err)
	assert.Equal(t, model.SessionInfo{
		SystemName:  "PRD",
		Client:      "100",
		User:        "JDOE",
		Program:     "SAPLSMTR_NAVIGATION",
		Transaction: "SESSION_MANAGER",
	}, info)

	info, err = s.StartTransaction("ME2N")
	require.NoError(t, err)
	assert.Equal(t, "ME2N", info.Transaction)

	info, err = s.EndTransaction()
	require.NoError(t, err)
	assert.Equal(t, "SESSION_MANAGER", info.Transaction)
}

func TestTransactionFailuresAreSurfaced(t *testing.T) {
	t.Parallel()

	s, h := connected(t)
	boom := errors.New("transaction ZZZZ does not exist")
	h.FailOn(fixture.OpTCode, "", boom)
	h.FailOn(fixture.OpEnd, "", boom)

	_, err := s.StartTransaction("ZZZZ")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"ZZZZ"`)

	_, err = s.EndTransaction()
	assert.ErrorIs(t, err, boom)

	s.Detach()
	_, err = s.StartTransaction("ME2N")
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = s.Info()
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestValidateWindowName(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)

	assert.NoError(t, s.ValidateWindowName("SAP Easy Access", 0, true))
	assert.NoError(t, s.ValidateWindowName("sap easy ACCESS", 0, false))

	err := s.ValidateWindowName("sap easy access", 0, true)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, model.NodeID("wnd[0]"), validation.Window)
	assert.Equal(t, "SAP Easy Access", validation.Got)

	err = s.ValidateWindowName("Save As", 1, false)
	assert.True(t, IsNotFound(err))
}

func TestFindInputByLabel(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	_, err := s.StartTransaction("MM03")
	require.NoError(t, err)

	id, err := s.FindInputByLabel("Plant")
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("wnd[1]/ctxtPLANT"), id)

	id, err = s.FindInputByLabel("Material")
	require.NoError(t, err)
	assert.Equal(t, model.NodeID("wnd[1]/ctxtMATERIAL"), id)

	_, err = s.FindInputByLabel("plant")
	assert.ErrorIs(t, err, platform.ErrNotFound)
}

func TestGoHomeFromReport(t *testing.T) {
	t.Parallel()

	s, h := connected(t)
	_, err := s.StartTransaction("ME2N")
	require.NoError(t, err)

	require.NoError(t, s.GoHome())
	assert.Equal(t, "home", h.Screen(0, 0))

	assert.Equal(t, []string{"wnd[0]/tbar[0]/btn[3]", platform.ExitConfirmButton}, callIDs(h.CallsFor(fixture.OpPress)))
	assert.Equal(t, []string{"wnd[1]"}, callIDs(h.CallsFor(fixture.OpClose)))
}

func TestGoHomeAlreadyHome(t *testing.T) {
	t.Parallel()

	s, h := connected(t)
	require.NoError(t, s.GoHome())
	assert.Empty(t, h.CallsFor(fixture.OpPress))
}

func TestGoHomeClosesPlainPopup(t *testing.T) {
	t.Parallel()

	s, h := connected(t)
	_, err := s.StartTransaction("MM03")
	require.NoError(t, err)

	require.NoError(t, s.GoHome())
	assert.Equal(t, []string{"wnd[1]"}, callIDs(h.CallsFor(fixture.OpClose)))
	assert.Empty(t, h.CallsFor(fixture.OpPress))
}

func TestGoHomeIsBounded(t *testing.T) {
	t.Parallel()

	h := newHost(t)
	opts := testOptions()
	opts.HomeMarker = "Somewhere Else"
	opts.HomeAttempts = 3
	s := connect(t, h, opts)

	err := s.GoHome()
	var timeout *TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, 3, timeout.Attempts)
	assert.Len(t, h.CallsFor(fixture.OpPress), 3)
}

func TestWaitForWindow(t *testing.T) {
	t.Parallel()

	s, _ := connected(t)
	ctx := context.Background()

	require.NoError(t, s.WaitForWindow(ctx, "wnd[0]", 1, time.Millisecond))

	err := s.WaitForWindow(ctx, "wnd[2]", 3, time.Millisecond)
	var timeout *TimeoutError
	require.True(t, errors.As(err, &timeout))
	assert.Equal(t, 3, timeout.Attempts)
	assert.True(t, IsNotFound(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err = s.WaitForWindow(cancelled, "wnd[2]", 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
