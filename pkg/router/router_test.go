package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/testutil"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type echoResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func echoHandler(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{Name: req.Name, Count: req.Count}, nil
}

func doRequest(t *testing.T, r *Router, req *http.Request) (int64, string, json.RawMessage) {
	recorder := httptest.NewRecorder()
	r.Handler().ServeHTTP(recorder, req)

	var resp struct {
		Code  int64           `json:"code"`
		Error string          `json:"error"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
	return resp.Code, resp.Error, resp.Data
}

func Test_Router_GETBindsQuery(t *testing.T) {
	r := New(testutil.MockContext())
	GET(r, "/echo", echoHandler)

	code, errMsg, data := doRequest(t, r,
		httptest.NewRequest(http.MethodGet, "/echo?name=foo&count=3", nil))
	require.Zero(t, code)
	require.Empty(t, errMsg)

	var echo echoResponse
	require.NoError(t, json.Unmarshal(data, &echo))
	require.Equal(t, echoResponse{Name: "foo", Count: 3}, echo)
}

func Test_Router_POSTBindsBody(t *testing.T) {
	r := New(testutil.MockContext())
	POST(r, "/echo", echoHandler)

	req := httptest.NewRequest(
		http.MethodPost, "/echo", strings.NewReader(`{"name":"bar","count":7}`))

	code, _, data := doRequest(t, r, req)
	require.Zero(t, code)

	var echo echoResponse
	require.NoError(t, json.Unmarshal(data, &echo))
	require.Equal(t, echoResponse{Name: "bar", Count: 7}, echo)
}

func Test_Router_RejectWrongMethod(t *testing.T) {
	r := New(testutil.MockContext())
	POST(r, "/echo", echoHandler)

	code, errMsg, _ := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, int64(errorx.BadRequest), code)
	require.NotEmpty(t, errMsg)
}

func Test_Router_HandlerError(t *testing.T) {
	r := New(testutil.MockContext())
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found raffle")
	})

	code, errMsg, _ := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, int64(errorx.NotFound), code)
	require.Equal(t, "Not found raffle", errMsg)
}

func Test_Router_PlainErrorHiddenFromClient(t *testing.T) {
	r := New(testutil.MockContext())
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errors.New("pq: connection reset")
	})

	code, errMsg, _ := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, errorx.Unknown.Code, errorx.Code(code))
	require.Equal(t, errorx.Unknown.Message, errMsg)
}

func Test_Router_MiddlewareShortCircuit(t *testing.T) {
	handlerCalled := false

	r := New(testutil.MockContext())
	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(branch, "/private", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		handlerCalled = true
		return &echoResponse{}, nil
	})

	code, _, _ := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, int64(errorx.Unauthenticated), code)
	require.False(t, handlerCalled)
}

func Test_Router_BranchIsolatesMiddlewares(t *testing.T) {
	r := New(testutil.MockContext())

	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(branch, "/private", echoHandler)
	GET(r, "/public", echoHandler)

	code, _, _ := doRequest(t, r, httptest.NewRequest(http.MethodGet, "/public?name=x", nil))
	require.Zero(t, code)

	code, _, _ = doRequest(t, r, httptest.NewRequest(http.MethodGet, "/private", nil))
	require.Equal(t, int64(errorx.Unauthenticated), code)
}

func Test_Router_CloserSeesOutcome(t *testing.T) {
	var closedWith error

	r := New(testutil.MockContext())
	r.AddCloser(func(ctx context.Context) {
		closedWith = xcontext.GetError(ctx)
	})
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found raffle")
	})

	doRequest(t, r, httptest.NewRequest(http.MethodGet, "/fail", nil))

	var errx errorx.Error
	require.ErrorAs(t, closedWith, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}
