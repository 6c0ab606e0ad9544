package middleware

import (
	"context"
	"strings"

	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/router"
	"github.com/raffler-space/backend/pkg/xcontext"
)

type AuthVerifier struct {
	useAccessToken bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

func (verifier *AuthVerifier) WithAccessToken() *AuthVerifier {
	verifier.useAccessToken = true
	return verifier
}

func (verifier *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if !verifier.useAccessToken {
			return nil, errorx.New(errorx.Unauthenticated, "No authentication method is allowed")
		}

		token := getAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := xcontext.TokenEngine(ctx).Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

// getAccessToken reads the token from the Authorization header first, then
// from the cookie configured for it.
func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if authorization := req.Header.Get("Authorization"); authorization != "" {
		token, found := strings.CutPrefix(authorization, "Bearer ")
		if found {
			return token
		}
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
