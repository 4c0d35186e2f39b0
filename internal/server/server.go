// Package server serves rendered textures over HTTP. Every request builds
// its own explorer from the query string, so requests never share state.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/bits"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gogpu/texplore"
	"github.com/gogpu/texplore/internal/cache"
	"github.com/gogpu/texplore/internal/config"
	"github.com/gogpu/texplore/internal/encode"
	"github.com/gogpu/texplore/internal/metrics"
)

// TexturePath is the image endpoint.
const TexturePath = "/texture.png"

// Server renders textures on request.
type Server struct {
	conf     config.Config
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	images   *cache.Cache[imageKey, []byte]
	pool     *texplore.Pool
}

// imageKey identifies an encoded response. Rendering is deterministic, so
// the resolved frame plus the encoding settings fully determine the bytes.
type imageKey struct {
	frame  texplore.Frame
	format encode.Format
	scale  int
}

// New returns a Server whose defaults come from conf. Metrics are recorded
// in m (may be nil) and exposed from gatherer; a nil gatherer disables
// /metrics.
func New(conf config.Config, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	return &Server{
		conf:     conf,
		metrics:  m,
		gatherer: gatherer,
		images:   cache.New[imageKey, []byte](conf.Server.CacheEntries),
		pool:     texplore.NewPool(conf.Workers),
	}
}

// Close stops the render workers shared by all requests. Requests still
// arriving afterwards render on their own goroutine.
func (s *Server) Close() {
	s.pool.Close()
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	var commonMiddlewares []alice.Constructor
	commonMiddlewares = append(commonMiddlewares, recoverPanic)
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		commonMiddlewares = append(commonMiddlewares, logRequest)
	}
	if s.metrics != nil {
		commonMiddlewares = append(commonMiddlewares, s.instrument)
	}
	chain := alice.New(commonMiddlewares...)

	mux.Handle("GET "+TexturePath, chain.ThenFunc(s.handleTexture))
	mux.Handle("GET /healthz", chain.ThenFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	if s.gatherer != nil {
		mux.Handle("GET /metrics", chain.Then(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return mux
}

// request holds the parsed query string.
type request struct {
	grid      texplore.Grid
	domain    texplore.Domain
	selection texplore.Selection
	random    bool
	seed      uint64
	format    encode.Format
	scale     int
}

var errBadParam = errors.New("bad parameter")

// MaxSide caps the width, height and scale query parameters.
const MaxSide = 1 << 14

// tooManyPixels reports whether w*h*scale² exceeds limit. The product is
// taken in 128 bits so no input can wrap it below the limit.
func tooManyPixels(w, h, scale, limit int) bool {
	if w < 0 || h < 0 || scale < 0 {
		return true
	}
	hi1, pixels := bits.Mul64(uint64(w), uint64(h))
	hi2, area := bits.Mul64(uint64(scale), uint64(scale))
	if hi1 != 0 || hi2 != 0 {
		return true
	}
	hi, total := bits.Mul64(pixels, area)
	return hi != 0 || total > uint64(max(limit, 0))
}

func (s *Server) parseRequest(q url.Values) (request, error) {
	sel, err := s.conf.Selection()
	if err != nil {
		return request{}, err
	}
	req := request{
		grid:      s.conf.Grid(),
		domain:    s.conf.TexploreDomain(),
		selection: sel,
		seed:      s.conf.Seed,
		scale:     1,
	}

	if v := q.Get("texture"); v != "" {
		i, err := texplore.ParseIndex(v)
		if err != nil {
			return req, err
		}
		if err := req.selection.SetAll(i); err != nil {
			return req, err
		}
	}
	for _, ch := range texplore.Channels {
		v := q.Get(ch.String())
		if v == "" {
			continue
		}
		i, err := texplore.ParseIndex(v)
		if err != nil {
			return req, err
		}
		if err := req.selection.SetChannel(ch, i); err != nil {
			return req, err
		}
	}

	if v := q.Get("random"); v != "" {
		if req.random, err = strconv.ParseBool(v); err != nil {
			return req, fmt.Errorf("random %q: %w", v, errBadParam)
		}
	}
	if v := q.Get("seed"); v != "" {
		if req.seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return req, fmt.Errorf("seed %q: %w", v, errBadParam)
		}
	}

	for _, b := range []struct {
		key string
		dst *float32
	}{
		{"xmin", &req.domain.XMin},
		{"xmax", &req.domain.XMax},
		{"ymin", &req.domain.YMin},
		{"ymax", &req.domain.YMax},
	} {
		v := q.Get(b.key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return req, fmt.Errorf("%s %q: %w", b.key, v, errBadParam)
		}
		*b.dst = float32(f)
	}
	if err := req.domain.Validate(); err != nil {
		return req, err
	}

	for _, d := range []struct {
		key string
		dst *int
	}{
		{"width", &req.grid.Width},
		{"height", &req.grid.Height},
		{"scale", &req.scale},
	} {
		v := q.Get(d.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxSide {
			return req, fmt.Errorf("%s %q not in [1, %d]: %w", d.key, v, MaxSide, errBadParam)
		}
		*d.dst = n
	}
	if tooManyPixels(req.grid.Width, req.grid.Height, req.scale, s.conf.Server.MaxPixels) {
		return req, fmt.Errorf("%dx%d at scale %d exceeds %d pixels: %w",
			req.grid.Width, req.grid.Height, req.scale, s.conf.Server.MaxPixels, errBadParam)
	}

	if v := q.Get("format"); v != "" {
		if req.format, err = encode.ParseFormat(v); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (s *Server) handleTexture(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := []texplore.Option{
		texplore.WithGrid(req.grid),
		texplore.WithDomain(req.domain),
		texplore.WithSelection(req.selection),
		texplore.WithPool(s.pool),
	}
	if req.seed != 0 {
		opts = append(opts, texplore.WithSeed(req.seed))
	}
	e, err := texplore.New(opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer e.Close()
	if req.random {
		e.Randomize()
	}

	frame := e.Frame()
	key := imageKey{frame: frame, format: req.format, scale: req.scale}
	data, hit := s.images.Get(key)
	if s.metrics != nil && s.images.Capacity() > 0 {
		s.metrics.ObserveCache(hit)
	}
	if !hit {
		var ok bool
		if data, ok = s.render(w, r, e, key); !ok {
			return
		}
		s.images.Set(key, data)
	}

	w.Header().Set("Content-Type", req.format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Texplore-Selection", frame.Selection.String())
	w.Header().Set("X-Texplore-Domain", frame.Mapper.Domain.String())
	_, _ = w.Write(data)
}

// render rasterizes and encodes one image. On failure it writes the error
// response and returns false.
func (s *Server) render(w http.ResponseWriter, r *http.Request, e *texplore.Explorer, key imageKey) ([]byte, bool) {
	started := time.Now()
	pm, frame, err := e.RenderPixmap(r.Context())
	if s.metrics != nil {
		s.metrics.ObserveRender(started, frame.Grid().Pixels(), err)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Debug().Err(err).Msg("render cancelled")
			return nil, false
		}
		log.Error().Err(err).Msg("render failed")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return nil, false
	}

	var buf bytes.Buffer
	if err := texplore.Encode(&buf, texplore.Snapshot(pm), "texture"+key.format.Ext(), texplore.ExportOptions{Scale: key.scale}); err != nil {
		if s.metrics != nil {
			s.metrics.ExportFailed()
		}
		log.Error().Err(err).Str("selection", frame.Selection.String()).Msg("export failed")
		http.Error(w, "export failed", http.StatusInternalServerError)
		return nil, false
	}
	return buf.Bytes(), true
}
