package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/xtding233/roulette/internal/metrics"
	"github.com/xtding233/roulette/internal/preset"
	"github.com/xtding233/roulette/internal/roulette"
	"github.com/xtding233/roulette/internal/session"
	"github.com/xtding233/roulette/internal/sharecode"
)

// DefaultTrials is the simulate trial count when a caller gives none.
const DefaultTrials = 10_000

// Host surfaces, used as metric labels.
const (
	SurfaceHTTP = "http"
	SurfaceGRPC = "grpc"
	SurfaceCLI  = "cli"
)

// PresetStore provides named presets. *preset.Loader satisfies it.
type PresetStore interface {
	Load(name string) (preset.Preset, error)
	List() ([]string, error)
}

type Options struct {
	PublicURL        string
	MaxTrials        int
	RestoreCacheSize int
	RestoreCacheTTL  time.Duration
	RNG              roulette.RandomSource // nil uses roulette.DefaultRNG
}

// SpinResult is one spin plus the state it was drawn from.
type SpinResult struct {
	Results  []string
	State    sharecode.State
	ShareURL string
}

// ShareResult is an encoded state.
type ShareResult struct {
	Query    string
	ShareURL string
}

// PresetView is a preset with a ready-made share link.
type PresetView struct {
	Preset   preset.Preset
	ShareURL string
}

// RouletteService runs spins, shares and restores for the network and CLI
// hosts. It keeps no session between calls: each call builds a fresh
// session.Session, so the service is safe for concurrent use as long as its
// RandomSource is.
type RouletteService struct {
	presets   PresetStore
	metrics   *metrics.Metrics
	rng       roulette.RandomSource
	restore   *expirable.LRU[string, sharecode.State]
	publicURL string
	maxTrials int
}

// NewRouletteService wires a service. presets and m may be nil.
func NewRouletteService(presets PresetStore, m *metrics.Metrics, opt Options) *RouletteService {
	if opt.RestoreCacheSize < 1 {
		opt.RestoreCacheSize = 1024
	}
	if opt.MaxTrials < 1 || opt.MaxTrials > roulette.MaxTrials {
		opt.MaxTrials = roulette.MaxTrials
	}
	rng := opt.RNG
	if rng == nil {
		rng = roulette.DefaultRNG()
	}
	return &RouletteService{
		presets:   presets,
		metrics:   m,
		rng:       rng,
		restore:   expirable.NewLRU[string, sharecode.State](opt.RestoreCacheSize, nil, opt.RestoreCacheTTL),
		publicURL: opt.PublicURL,
		maxTrials: opt.MaxTrials,
	}
}

func (s *RouletteService) PublicURL() string { return s.publicURL }

// DefaultTrials is min(DefaultTrials, the configured trial limit).
func (s *RouletteService) DefaultTrials() int { return min(DefaultTrials, s.maxTrials) }

// SpinQuery loads a share query or link into a new session and spins it. An
// empty query spins the default single blank item.
func (s *RouletteService) SpinQuery(surface, query string) SpinResult {
	return s.SpinRawQuery(surface, sharecode.RawQuery(query))
}

// SpinRawQuery is SpinQuery for a query already split off its URL, such as
// an HTTP request's raw query. It is decoded as is.
func (s *RouletteService) SpinRawQuery(surface, rawQuery string) SpinResult {
	sess := session.New()
	sess.Load(rawQuery)
	return s.spin(surface, sess)
}

// SpinState spins an explicit state. Weights and draw count are clamped.
func (s *RouletteService) SpinState(surface string, st sharecode.State) SpinResult {
	return s.spin(surface, session.FromState(st))
}

func (s *RouletteService) spin(surface string, sess *session.Session) SpinResult {
	results := sess.Spin(s.rng)
	s.metrics.ObserveSpin(surface, len(results))
	return SpinResult{
		Results:  results,
		State:    sess.State(),
		ShareURL: sess.Share(s.publicURL),
	}
}

// Share encodes st after the session's clamping rules.
func (s *RouletteService) Share(surface string, st sharecode.State) ShareResult {
	return s.ShareWithBase(surface, s.publicURL, st)
}

// ShareWithBase is Share with an explicit page URL.
func (s *RouletteService) ShareWithBase(surface, base string, st sharecode.State) ShareResult {
	sess := session.FromState(st)
	shareURL := sess.Share(base)
	s.metrics.ObserveShare(surface)
	cur := sess.State()
	return ShareResult{
		Query:    sharecode.Encode(cur.Items, cur.DrawCount),
		ShareURL: shareURL,
	}
}

// Restore decodes a share query or URL.
func (s *RouletteService) Restore(query string) sharecode.State {
	return s.RestoreRawQuery(sharecode.RawQuery(query))
}

// RestoreRawQuery decodes a query already split off its URL. Decoded states
// are cached by raw query; callers get their own copy of the items.
func (s *RouletteService) RestoreRawQuery(raw string) sharecode.State {
	if st, ok := s.restore.Get(raw); ok {
		s.metrics.ObserveRestore(true)
		return cloneState(st)
	}
	st := sharecode.Decode(raw)
	s.restore.Add(raw, cloneState(st))
	s.metrics.ObserveRestore(false)
	return st
}

// Simulate runs a Monte Carlo check over a raw share query. Keys other than
// the share keys (trials, for one) are ignored by the decoder.
func (s *RouletteService) Simulate(rawQuery string, trials int) (roulette.Report, error) {
	if trials < 1 || trials > s.maxTrials {
		return roulette.Report{}, fmt.Errorf("%w: got %d, limit %d", roulette.ErrInvalidTrials, trials, s.maxTrials)
	}
	st := s.RestoreRawQuery(rawQuery)
	rep, err := roulette.RunMonteCarlo(st.Items, st.DrawCount, trials, s.rng)
	if err != nil {
		return roulette.Report{}, fmt.Errorf("simulate: %w", err)
	}
	s.metrics.ObserveSimulate(trials)
	return rep, nil
}

// Presets lists preset names. Without a store the list is empty.
func (s *RouletteService) Presets() ([]string, error) {
	if s.presets == nil {
		return []string{}, nil
	}
	names, err := s.presets.List()
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	return names, nil
}

// Preset loads one preset and builds its share link.
func (s *RouletteService) Preset(name string) (PresetView, error) {
	if s.presets == nil {
		return PresetView{}, fmt.Errorf("%w: %q", preset.ErrPresetNotFound, name)
	}
	p, err := s.presets.Load(name)
	if err != nil {
		return PresetView{}, err
	}
	return PresetView{
		Preset:   p,
		ShareURL: sharecode.ShareURL(s.publicURL, p.Items, p.Draws),
	}, nil
}

// IsNotFound reports whether err means an unknown preset.
func IsNotFound(err error) bool {
	return errors.Is(err, preset.ErrPresetNotFound) || errors.Is(err, preset.ErrInvalidName)
}

func cloneState(st sharecode.State) sharecode.State {
	return sharecode.State{Items: roulette.CloneItems(st.Items), DrawCount: st.DrawCount}
}
