package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/homefront-community/homefront/internal/logger"
	"github.com/homefront-community/homefront/internal/mock"
	"github.com/homefront-community/homefront/models"
)

func newTestManager(t *testing.T, ctrl *gomock.Controller) (*Manager, *mock.MockGateway, *mock.MockTokenStore) {
	t.Helper()
	mockGateway := mock.NewMockGateway(ctrl)
	mockTokens := mock.NewMockTokenStore(ctrl)
	return NewManager(mockGateway, mockTokens, logger.Nop()), mockGateway, mockTokens
}

func validPayload() models.UserPayload {
	return models.UserPayload{
		ID:       42,
		Email:    "dana@example.org",
		FullName: "Dana Levi",
		IsAdmin:  false,
	}
}

// ── Bootstrap ────────────────────────────────────────────────────────────────

func TestManager_Bootstrap_NoStoredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockTokens := newTestManager(t, ctrl)
	mockTokens.EXPECT().LoadToken().Return("", nil)
	// No gateway expectations: without a credential there is nothing to
	// validate and no request may leave the process.

	require.True(t, mgr.State().Loading)
	mgr.Bootstrap(context.Background())

	state := mgr.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Empty(t, mgr.Token())
}

func TestManager_Bootstrap_ValidStoredToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().LoadToken().Return("stored-token", nil)
	mockGateway.EXPECT().CurrentUser(ctx, false).Return(validPayload(), nil)

	mgr.Bootstrap(ctx)

	state := mgr.State()
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, int64(42), state.User.ID)
	assert.Equal(t, "stored-token", mgr.Token())
}

func TestManager_Bootstrap_RejectedTokenIsDiscarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().LoadToken().Return("expired-token", nil)
	mockGateway.EXPECT().CurrentUser(ctx, false).Return(models.UserPayload{}, errors.New("401 unauthorized"))
	mockTokens.EXPECT().DeleteToken().Return(nil)

	mgr.Bootstrap(ctx)

	state := mgr.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Empty(t, mgr.Token(), "rejected credential must not linger in memory")
}

func TestManager_Bootstrap_EmptyPayloadRetriesWithCacheBusting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().LoadToken().Return("stored-token", nil)
	gomock.InOrder(
		mockGateway.EXPECT().CurrentUser(ctx, false).Return(models.UserPayload{}, nil),
		mockGateway.EXPECT().CurrentUser(ctx, true).Return(validPayload(), nil),
	)

	mgr.Bootstrap(ctx)

	state := mgr.State()
	require.NotNil(t, state.User)
	assert.Equal(t, "dana@example.org", state.User.Email)
}

func TestManager_Bootstrap_EmptyPayloadTwiceDiscardsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	mockTokens.EXPECT().LoadToken().Return("stored-token", nil)
	gomock.InOrder(
		mockGateway.EXPECT().CurrentUser(ctx, false).Return(models.UserPayload{}, nil),
		mockGateway.EXPECT().CurrentUser(ctx, true).Return(models.UserPayload{}, nil),
	)
	mockTokens.EXPECT().DeleteToken().Return(nil)

	mgr.Bootstrap(ctx)

	state := mgr.State()
	assert.False(t, state.Loading)
	assert.Nil(t, state.User)
}

func TestManager_Bootstrap_CancelledContextLeavesTokenAndState(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	mockTokens.EXPECT().LoadToken().Return("stored-token", nil)
	mockGateway.EXPECT().CurrentUser(ctx, false).DoAndReturn(
		func(_ context.Context, _ bool) (models.UserPayload, error) {
			cancel()
			return models.UserPayload{}, context.Canceled
		},
	)
	// DeleteToken must NOT be called: a cancelled startup leaves the
	// persisted credential intact for the next run.

	mgr.Bootstrap(ctx)

	state := mgr.State()
	assert.True(t, state.Loading, "no state write may land after cancellation")
	assert.Nil(t, state.User)
}

func TestManager_Bootstrap_RunsOnlyOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockTokens := newTestManager(t, ctrl)
	mockTokens.EXPECT().LoadToken().Return("", nil).Times(1)

	ctx := context.Background()
	mgr.Bootstrap(ctx)
	mgr.Bootstrap(ctx)
	mgr.Bootstrap(ctx)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestManager_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockGateway.EXPECT().Login(ctx, "dana@example.org", "secret").
			Return(models.Token{AccessToken: "fresh-token", TokenType: "bearer"}, nil),
		mockTokens.EXPECT().SaveToken("fresh-token").Return(nil),
		mockGateway.EXPECT().CurrentUser(ctx, false).Return(validPayload(), nil),
	)

	user, err := mgr.Login(ctx, "dana@example.org", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)
	assert.False(t, user.IsAdmin)

	state := mgr.State()
	assert.False(t, state.Loading)
	require.NotNil(t, state.User)
	assert.Equal(t, "fresh-token", mgr.Token())
}

func TestManager_Login_AdminFlagNormalized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	payload := validPayload()
	payload.IsAdmin = "1"

	mockGateway.EXPECT().Login(ctx, "dana@example.org", "secret").
		Return(models.Token{AccessToken: "fresh-token"}, nil)
	mockTokens.EXPECT().SaveToken("fresh-token").Return(nil)
	mockGateway.EXPECT().CurrentUser(ctx, false).Return(payload, nil)

	user, err := mgr.Login(ctx, "dana@example.org", "secret")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestManager_Login_RejectedCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, _ := newTestManager(t, ctrl)
	ctx := context.Background()

	mockGateway.EXPECT().Login(ctx, "dana@example.org", "wrong").
		Return(models.Token{}, errors.New("401 unauthorized"))
	// SaveToken must NOT be called: a rejected exchange persists nothing.

	_, err := mgr.Login(ctx, "dana@example.org", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoginOnServer)
	assert.Empty(t, mgr.Token())
	assert.Nil(t, mgr.State().User)
}

func TestManager_Login_ValidationFailureDiscardsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		mockGateway.EXPECT().Login(ctx, "dana@example.org", "secret").
			Return(models.Token{AccessToken: "fresh-token"}, nil),
		mockTokens.EXPECT().SaveToken("fresh-token").Return(nil),
		mockGateway.EXPECT().CurrentUser(ctx, false).
			Return(models.UserPayload{}, errors.New("502 bad gateway")),
		mockTokens.EXPECT().DeleteToken().Return(nil),
	)

	_, err := mgr.Login(ctx, "dana@example.org", "secret")
	require.Error(t, err)
	assert.Empty(t, mgr.Token(), "a token without a validated user must not be held")
	assert.Nil(t, mgr.State().User)
}

func TestManager_Login_SaveFailureKeepsSessionInMemory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	mockGateway.EXPECT().Login(ctx, "dana@example.org", "secret").
		Return(models.Token{AccessToken: "fresh-token"}, nil)
	mockTokens.EXPECT().SaveToken("fresh-token").Return(errors.New("disk full"))
	mockGateway.EXPECT().CurrentUser(ctx, false).Return(validPayload(), nil)

	user, err := mgr.Login(ctx, "dana@example.org", "secret")
	require.NoError(t, err, "failed persistence must not fail the login")
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "fresh-token", mgr.Token())
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestManager_Logout_ClearsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, mockTokens := newTestManager(t, ctrl)
	ctx := context.Background()

	mockGateway.EXPECT().Login(ctx, "dana@example.org", "secret").
		Return(models.Token{AccessToken: "fresh-token"}, nil)
	mockTokens.EXPECT().SaveToken("fresh-token").Return(nil)
	mockGateway.EXPECT().CurrentUser(ctx, false).Return(validPayload(), nil)

	_, err := mgr.Login(ctx, "dana@example.org", "secret")
	require.NoError(t, err)

	mockTokens.EXPECT().DeleteToken().Return(nil)
	mgr.Logout()

	state := mgr.State()
	assert.Nil(t, state.User)
	assert.False(t, state.Loading)
	assert.Empty(t, mgr.Token())
}

func TestManager_Logout_DeleteFailureStillClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockTokens := newTestManager(t, ctrl)

	mockTokens.EXPECT().DeleteToken().Return(errors.New("permission denied"))
	mgr.Logout()

	assert.Nil(t, mgr.State().User)
	assert.Empty(t, mgr.Token())
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestManager_Register_DoesNotAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, _ := newTestManager(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{Email: "dana@example.org", Password: "secret", FullName: "Dana Levi"}
	mockGateway.EXPECT().Register(ctx, req).Return(nil)

	require.NoError(t, mgr.Register(ctx, req))
	assert.Empty(t, mgr.Token())
	assert.Nil(t, mgr.State().User)
}

func TestManager_Register_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, mockGateway, _ := newTestManager(t, ctrl)
	ctx := context.Background()

	req := models.RegisterRequest{Email: "dana@example.org"}
	mockGateway.EXPECT().Register(ctx, req).Return(errors.New("409 conflict"))

	err := mgr.Register(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegisterOnServer)
}

// ── Subscribe ────────────────────────────────────────────────────────────────

func TestManager_Subscribe_ReceivesStateChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockTokens := newTestManager(t, ctrl)
	mockTokens.EXPECT().LoadToken().Return("", nil)

	ch, cancel := mgr.Subscribe()
	defer cancel()

	mgr.Bootstrap(context.Background())

	select {
	case state := <-ch:
		assert.False(t, state.Loading)
		assert.Nil(t, state.User)
	case <-time.After(time.Second):
		t.Fatal("no state update delivered to subscriber")
	}
}

func TestManager_Subscribe_CancelStopsDelivery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mgr, _, mockTokens := newTestManager(t, ctrl)

	ch, cancel := mgr.Subscribe()
	cancel()

	mockTokens.EXPECT().DeleteToken().Return(nil)
	mgr.Logout()

	_, open := <-ch
	assert.False(t, open, "cancelled subscription channel must be closed")
}
