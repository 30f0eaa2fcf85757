package removal

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"iconforge/logging"
)

// Registry caches loaded engines per (kind, model). Loading model weights
// can take seconds and hundreds of megabytes, so at most one instance per
// model identifier exists for the process lifetime; the first caller loads
// under the lock while concurrent callers wait, and later callers get the
// cached handle. Load failures are cached too, so a broken model is not
// retried on every request.
//
// The registry is an explicit object owned by the caller, never a
// package-level variable, so tests can substitute fake engines.
type Registry struct {
	mu       sync.Mutex
	logger   *logging.Logger
	sessions map[string]*cacheEntry
	deep     *cacheEntry

	// loadSession and loadDeep are the engine constructors, and the
	// available funcs report backend linkage. Overridable in tests.
	loadSession      func(model string) (Engine, error)
	loadDeep         func() (Engine, error)
	sessionAvailable func() bool
	deepAvailable    func() bool
}

// cacheEntry records a completed load attempt: either a usable engine or
// the error that made it unusable for the rest of the process lifetime.
type cacheEntry struct {
	engine Engine
	err    error
}

// NewRegistry creates an empty engine registry.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Registry{
		logger:   logger.Named("registry"),
		sessions: make(map[string]*cacheEntry),
		loadSession: func(model string) (Engine, error) {
			return newSessionEngine(model)
		},
		loadDeep: func() (Engine, error) {
			return newDeepEngine()
		},
		sessionAvailable: sessionBackendAvailable,
		deepAvailable:    deepBackendAvailable,
	}
}

// Engine returns the cached engine for (kind, model), loading it on first
// use. model is only meaningful for the session kind; empty selects
// DefaultSessionModel.
//
// Fails with ErrEngineUnavailable when the backend for kind is not linked
// into this build, and with ErrModelLoadFailed when loading failed after
// exhausting the fallback policy.
func (r *Registry) Engine(kind Kind, model string) (Engine, error) {
	switch kind {
	case KindSession:
		return r.sessionEngine(model)
	case KindDeep:
		return r.deepEngine()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, kind)
	}
}

// Preload warms the cache so the first request does not pay the load cost.
// Load errors are logged, cached and otherwise ignored.
func (r *Registry) Preload(kind Kind, model string) {
	if _, err := r.Engine(kind, model); err != nil {
		r.logger.Warn("engine preload failed",
			zap.String("engine", string(kind)),
			zap.Error(err))
	}
}

// Available reports whether the backend for kind is linked into this build.
func (r *Registry) Available(kind Kind) bool {
	switch kind {
	case KindSession:
		return r.sessionAvailable()
	case KindDeep:
		return r.deepAvailable()
	default:
		return false
	}
}

// sessionEngine returns the cached session engine for model, loading it on
// first use. A failed load of the requested model is retried once with
// the lightweight fallback model before the failure is cached; a
// successful fallback is cached under both model names so only one
// instance of it ever exists.
func (r *Registry) sessionEngine(model string) (Engine, error) {
	if !r.sessionAvailable() {
		return nil, fmt.Errorf("%w: matting backend not linked", ErrEngineUnavailable)
	}
	if model == "" {
		model = DefaultSessionModel
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.sessions[model]; ok {
		return entry.engine, entry.err
	}

	r.logger.Info("loading matting session", zap.String("model", model))
	engine, err := r.loadSession(model)
	if err != nil && model != FallbackSessionModel {
		r.logger.Warn("session model failed to load, falling back",
			zap.String("model", model),
			zap.String("fallback", FallbackSessionModel),
			zap.Error(err))
		if cached, ok := r.sessions[FallbackSessionModel]; ok {
			engine, err = cached.engine, cached.err
		} else {
			engine, err = r.loadSession(FallbackSessionModel)
		}
		if err == nil {
			// A later direct request for the fallback reuses this instance.
			r.sessions[FallbackSessionModel] = &cacheEntry{engine: engine}
		}
	}
	if err != nil {
		err = fmt.Errorf("%w: session model %s: %v", ErrModelLoadFailed, model, err)
	}

	entry := &cacheEntry{engine: engine, err: err}
	r.sessions[model] = entry
	return entry.engine, entry.err
}

// deepEngine returns the cached deep segmentation engine, loading it on
// first use. There is no fallback model for the deep kind; a load failure
// is cached and reported directly.
func (r *Registry) deepEngine() (Engine, error) {
	if !r.deepAvailable() {
		return nil, fmt.Errorf("%w: segmentation backend not linked", ErrEngineUnavailable)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deep != nil {
		return r.deep.engine, r.deep.err
	}

	r.logger.Info("loading deep segmentation model", zap.String("model", DeepModelID))
	engine, err := r.loadDeep()
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrModelLoadFailed, DeepModelID, err)
	} else if deep, ok := engine.(*DeepEngine); ok {
		r.logger.Info("deep segmentation model loaded",
			zap.String("model", DeepModelID),
			zap.String("device", deep.Device()))
	}

	r.deep = &cacheEntry{engine: engine, err: err}
	return r.deep.engine, r.deep.err
}
