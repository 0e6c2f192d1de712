package mdinline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPEncodeRequest configures HTTPEncode.
type HTTPEncodeRequest struct {
	URL     string
	Client  *http.Client
	Writer  io.Writer
	Format  Format
	Indent  int
	Width   int
	Options []ParseOption
}

// HTTPEncode fetches text over HTTP(S) and encodes its parsed tree.
func HTTPEncode(ctx context.Context, req HTTPEncodeRequest) error {
	if req.URL == "" {
		return fmt.Errorf("http encode: URL is required")
	}
	if req.Writer == nil {
		return fmt.Errorf("http encode: Writer is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("http encode: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("http encode: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http encode: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http encode: status %s", resp.Status)
	}
	return Encode(EncodeRequest{
		Reader:  resp.Body,
		Writer:  req.Writer,
		Format:  req.Format,
		Indent:  req.Indent,
		Width:   req.Width,
		Options: req.Options,
	})
}

// DefaultMaxBodyBytes caps request bodies accepted by the handler.
const DefaultMaxBodyBytes = 1 << 20

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	logger       *slog.Logger
	maxBodyBytes int64
	parseOpts    []ParseOption
}

// WithLogger sets the request logger. The default discards.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(cfg *handlerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxBodyBytes limits request bodies; values <= 0 keep the default.
func WithMaxBodyBytes(n int64) HandlerOption {
	return func(cfg *handlerConfig) {
		if n > 0 {
			cfg.maxBodyBytes = n
		}
	}
}

// WithParseOptions passes options to Parse for every request.
func WithParseOptions(opts ...ParseOption) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.parseOpts = append(cfg.parseOpts, opts...)
	}
}

type handler struct {
	cfg handlerConfig
}

// NewHandler returns an http.Handler that parses POST bodies and responds with
// the encoded tree. The format query parameter selects json (default) or yaml.
//
// Status codes: 405 for non-POST methods, 413 for oversized bodies, 400 for
// invalid input or format, 422 with a JSON error body for unsupported tokens.
func NewHandler(opts ...HandlerOption) http.Handler {
	cfg := handlerConfig{
		logger:       slog.New(slog.DiscardHandler),
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &handler{cfg: cfg}
}

type errorBody struct {
	Error string `json:"error"`
	Token string `json:"token,omitempty"`
	Index *int   `json:"index,omitempty"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w}
	h.serve(rec, r)
	h.cfg.logger.LogAttrs(r.Context(), slog.LevelInfo, "request",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", rec.status),
		slog.Int("bytes", rec.bytes),
		slog.Duration("duration", time.Since(start)),
	)
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return
	}
	format, err := ParseFormat(r.URL.Query().Get("format"))
	if err != nil || (format != FormatJSON && format != FormatYAML) {
		writeError(w, http.StatusBadRequest, errorBody{Error: fmt.Sprintf("unsupported format %q", r.URL.Query().Get("format"))})
		return
	}
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errorBody{Error: "request body too large"})
			return
		}
		writeError(w, http.StatusBadRequest, errorBody{Error: "read body: " + err.Error()})
		return
	}
	if err := ValidateInput(src); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	nodes, err := ParseString(string(src), h.cfg.parseOpts...)
	if err != nil {
		var unsupported *UnsupportedTokenError
		if errors.As(err, &unsupported) {
			idx := unsupported.Index
			writeError(w, http.StatusUnprocessableEntity, errorBody{
				Error: err.Error(),
				Token: unsupported.Kind.String(),
				Index: &idx,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := EncodeNodes(&buf, nodes, format, EncodeOptions{}); err != nil {
		writeError(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	if format == FormatYAML {
		w.Header().Set("Content-Type", "application/yaml")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
