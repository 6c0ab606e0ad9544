package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_AuthVerifier_BearerToken(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/getMyTickets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	ctx = xcontext.WithHTTPRequest(ctx, req)

	newCtx, err := NewAuthVerifier().WithAccessToken().Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_Cookie(t *testing.T) {
	ctx := testutil.MockContext()

	token, err := xcontext.TokenEngine(ctx).Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/getMyTickets", nil)
	req.AddCookie(&http.Cookie{
		Name:  xcontext.Configs(ctx).Auth.AccessToken.Name,
		Value: token,
	})
	ctx = xcontext.WithHTTPRequest(ctx, req)

	newCtx, err := NewAuthVerifier().WithAccessToken().Middleware()(ctx)
	require.NoError(t, err)
	require.Equal(t, "user1", xcontext.RequestUserID(newCtx))
}

func Test_AuthVerifier_MissingToken(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest(http.MethodGet, "/getMyTickets", nil))

	_, err := NewAuthVerifier().WithAccessToken().Middleware()(ctx)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_AuthVerifier_InvalidToken(t *testing.T) {
	ctx := testutil.MockContext()

	req := httptest.NewRequest(http.MethodGet, "/getMyTickets", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	ctx = xcontext.WithHTTPRequest(ctx, req)

	_, err := NewAuthVerifier().WithAccessToken().Middleware()(ctx)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}
