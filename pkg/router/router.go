package router

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/raffler-space/backend/pkg/errorx"
	"github.com/raffler-space/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs around a handler. It can replace the request context by
// returning a non-nil one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, no matter how the request
// went.
type CloserFunc func(ctx context.Context)

// Router dispatches requests to generic handlers. The root context it is
// created with carries the database, configs, logger and token engine, every
// request context derives from it.
type Router struct {
	rootCtx context.Context

	mux     *http.ServeMux
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	return &Router{rootCtx: ctx, mux: http.NewServeMux()}
}

// Branch derives a router sharing the same mux but with its own middleware
// chains. Registered middlewares of the parent are kept.
func (r *Router) Branch() *Router {
	return &Router{
		rootCtx: r.rootCtx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Static(pattern, root string) {
	r.mux.Handle(pattern, http.FileServer(http.Dir(root)))
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, route(r.Branch(), http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, route(r.Branch(), http.MethodPost, handler))
}

func route[Request, Response any](
	r *Router, method string, handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.rootCtx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithResponseHolder(ctx)

		defer func() {
			writeResponse(ctx)
			for _, closer := range r.closers {
				closer(ctx)
			}
		}()

		if req.Method != method {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest,
				"Not supported method %s for %s", req.Method, req.URL.Path))
			return
		}

		for _, middleware := range r.befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		request, err := parseRequest[Request](ctx, method)
		if err != nil {
			xcontext.SetError(ctx, err)
			return
		}

		resp, err := handler(ctx, request)
		if err != nil {
			xcontext.SetError(ctx, err)
			return
		}

		xcontext.SetResponse(ctx, resp)

		for _, middleware := range r.afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}
	}
}

// parseRequest binds the query string of a GET or the json body of a POST to
// the request struct. Both use the json tag.
func parseRequest[Request any](ctx context.Context, method string) (*Request, error) {
	req := new(Request)
	httpReq := xcontext.HTTPRequest(ctx)

	if method == http.MethodGet {
		values := map[string]string{}
		for key, value := range httpReq.URL.Query() {
			if len(value) > 0 {
				values[key] = value[0]
			}
		}

		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           req,
			TagName:          "json",
			WeaklyTypedInput: true,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create decoder: %v", err)
			return nil, errorx.Unknown
		}

		if err := decoder.Decode(values); err != nil {
			return nil, errorx.New(errorx.BadRequest, "Cannot bind the query")
		}

		return req, nil
	}

	if httpReq.Body == nil || httpReq.ContentLength == 0 {
		return req, nil
	}

	// Multipart bodies are parsed by the handler itself.
	if strings.HasPrefix(httpReq.Header.Get("Content-Type"), "multipart/form-data") {
		return req, nil
	}

	if err := json.NewDecoder(httpReq.Body).Decode(req); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Cannot bind the body")
	}

	return req, nil
}
