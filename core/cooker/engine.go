// ABOUTME: Recipe cooking engine owning the parser, translator and model registries
// ABOUTME: Execution mode flags apply to every subsequent CookRecipe call

package cooker

import (
	"sort"
	"sync"

	"recipe-cook-api/core/errors"
	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/parsers"
	"recipe-cook-api/core/translation"
	"recipe-cook-api/core/workers"
)

// Name is the cooker value every recipe handled by the engine must carry.
const Name = "DynamicParser"

// Default sizing for multithreaded population and the async pool.
const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

// Engine cooks recipes against raw documents. It is safe for concurrent use.
type Engine struct {
	logger       interfaces.Logger
	workers      int
	queueSize    int
	docs         *parsers.DocumentCache
	extraParsers bool

	mu      sync.RWMutex
	parsers map[string]parsers.Parser

	translators *translation.TranslatorRegistry
	models      *translation.ModelRegistry

	flagsMu         sync.RWMutex
	asyncMode       bool
	batchMode       bool
	multithreadMode bool

	poolMu sync.Mutex
	pool   *workers.Pool

	tasks *taskSet
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWorkers sets the fan-out of multithreaded population and the size of
// the async pool.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithQueueSize bounds the number of queued async cooks.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.queueSize = n
		}
	}
}

// WithDocumentCache shares decoded documents between cooks of the same data.
func WithDocumentCache(cache *parsers.DocumentCache) Option {
	return func(e *Engine) {
		e.docs = cache
	}
}

// WithExtraParsers registers the rss, html and gjson parsers next to the
// built-in json and xml ones.
func WithExtraParsers() Option {
	return func(e *Engine) {
		e.extraParsers = true
	}
}

// New creates an engine with the json and xml parsers registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:      nopLogger{},
		workers:     DefaultWorkers,
		queueSize:   DefaultQueueSize,
		parsers:     make(map[string]parsers.Parser),
		translators: translation.NewTranslatorRegistry(),
		models:      translation.NewModelRegistry(),
		tasks:       newTaskSet(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var parserOpts []parsers.Option
	if e.docs != nil {
		parserOpts = append(parserOpts, parsers.WithDocumentCache(e.docs))
	}
	for tag, p := range parsers.Builtin(parserOpts...) {
		e.parsers[tag] = p
	}
	if e.extraParsers {
		for tag, p := range parsers.Extras(parserOpts...) {
			e.parsers[tag] = p
		}
	}
	return e
}

// Name returns the cooker identifier.
func (e *Engine) Name() string { return Name }

// AddParserImpl registers a parser under a format tag. Nil parsers, empty tags
// and duplicates are refused.
func (e *Engine) AddParserImpl(tag string, p parsers.Parser) bool {
	if tag == "" || p == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.parsers[tag]; exists {
		return false
	}
	e.parsers[tag] = p
	return true
}

// GetParserImpl returns the parser registered under tag.
func (e *Engine) GetParserImpl(tag string) (parsers.Parser, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	p, ok := e.parsers[tag]
	if !ok {
		return nil, &errors.ParserNotFoundError{Format: tag}
	}
	return p, nil
}

// ParserFormats lists the registered format tags in sorted order.
func (e *Engine) ParserFormats() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	formats := make([]string, 0, len(e.parsers))
	for tag := range e.parsers {
		formats = append(formats, tag)
	}
	sort.Strings(formats)
	return formats
}

// AddTranslatorImpl registers a translator under its name.
func (e *Engine) AddTranslatorImpl(t translation.ModelTranslator) bool {
	return e.translators.Register(t)
}

// GetTranslatorImpl returns the translator registered under name.
func (e *Engine) GetTranslatorImpl(name string) (translation.ModelTranslator, error) {
	return e.translators.Lookup(name)
}

// RegisterModel makes a model name available to recipes without a translator.
func (e *Engine) RegisterModel(name string, ctor translation.Constructor) bool {
	return e.models.Register(name, ctor)
}

// Models exposes the model registry for typed registration.
func (e *Engine) Models() *translation.ModelRegistry { return e.models }

// Translators exposes the translator registry.
func (e *Engine) Translators() *translation.TranslatorRegistry { return e.translators }

// ConfigureSettings sets batch and multithread mode together.
func (e *Engine) ConfigureSettings(batchMode, multithreadMode bool) {
	e.flagsMu.Lock()
	defer e.flagsMu.Unlock()
	e.batchMode = batchMode
	e.multithreadMode = multithreadMode
}

// SetAsyncMode switches between cooking on the caller's goroutine and on the
// background pool.
func (e *Engine) SetAsyncMode(async bool) {
	e.flagsMu.Lock()
	defer e.flagsMu.Unlock()
	e.asyncMode = async
}

// SetBatchMode switches between per-model and whole-list delivery.
func (e *Engine) SetBatchMode(batch bool) {
	e.flagsMu.Lock()
	defer e.flagsMu.Unlock()
	e.batchMode = batch
}

// SetMultithreadMode switches parallel node population on or off.
func (e *Engine) SetMultithreadMode(multithread bool) {
	e.flagsMu.Lock()
	defer e.flagsMu.Unlock()
	e.multithreadMode = multithread
}

func (e *Engine) IsAsyncMode() bool {
	e.flagsMu.RLock()
	defer e.flagsMu.RUnlock()
	return e.asyncMode
}

func (e *Engine) IsBatchMode() bool {
	e.flagsMu.RLock()
	defer e.flagsMu.RUnlock()
	return e.batchMode
}

func (e *Engine) IsMultithreadMode() bool {
	e.flagsMu.RLock()
	defer e.flagsMu.RUnlock()
	return e.multithreadMode
}

// mode is a snapshot of the flags taken when a cook starts.
type mode struct {
	async       bool
	batch       bool
	multithread bool
}

func (e *Engine) snapshot() mode {
	e.flagsMu.RLock()
	defer e.flagsMu.RUnlock()
	return mode{async: e.asyncMode, batch: e.batchMode, multithread: e.multithreadMode}
}

// workerPool starts the async pool on first use.
func (e *Engine) workerPool() (*workers.Pool, error) {
	e.poolMu.Lock()
	defer e.poolMu.Unlock()
	if e.pool == nil {
		e.pool = workers.NewPool(workers.WorkerConfig{MaxWorkers: e.workers, QueueSize: e.queueSize})
		if err := e.pool.Start(); err != nil {
			return nil, err
		}
	}
	return e.pool, nil
}

// Close cancels outstanding async cooks and stops the worker pool.
func (e *Engine) Close() error {
	e.CancelTranslationTasks()
	e.poolMu.Lock()
	defer e.poolMu.Unlock()
	if e.pool == nil {
		return nil
	}
	err := e.pool.Stop()
	e.pool = nil
	return err
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
