// Package loader loads JavaScript files from disk or memory and parses them,
// optionally following the relative imports of modules to build the whole
// module graph.
//
// The loader supports two modes of operation:
//   - Simple mode: parses a single file as a script, or as a module with
//     WithModule
//   - Follow mode: parses the file as a module and recursively loads every
//     relative module request it makes
//
// Parse results are cached in an LRU keyed by the source digest and the
// environment fingerprint, so loading the same content twice with the same
// settings parses it once.
//
// Example usage:
//
//	// Parse a single script
//	ldr := loader.New()
//	result, err := ldr.Load(ctx, "app.js")
//
//	// Parse a module and everything it imports
//	ldr := loader.New(loader.WithFollowImports())
//	result, err := ldr.Load(ctx, "main.mjs")
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/robinvdvleuten/jsparse/ast"
	"github.com/robinvdvleuten/jsparse/config"
	"github.com/robinvdvleuten/jsparse/errors"
	"github.com/robinvdvleuten/jsparse/parser"
	"github.com/robinvdvleuten/jsparse/source"
	"github.com/robinvdvleuten/jsparse/telemetry"
)

// DefaultCacheSize is the number of parse results kept by default.
const DefaultCacheSize = 128

// StdinName is the file name used for sources read from standard input.
const StdinName = "<stdin>"

// Extensions are tried in order when a module request names no existing file.
var Extensions = []string{".js", ".mjs"}

// Loader loads and parses JavaScript files.
//
// Configure the loader using functional options passed to New:
//
//	ldr := New(WithFollowImports(), WithLogger(logger))
type Loader struct {
	// FollowImports determines whether relative module requests are loaded
	// recursively. It implies Module.
	FollowImports bool

	// Module parses files as modules instead of scripts.
	Module bool

	env       *config.Environment
	log       *zap.Logger
	cacheSize int
	cache     *lru.Cache
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowImports parses files as modules and loads every relative module
// request they make. Requests are resolved from the directory of the
// requesting file; bare specifiers such as "react" are left alone.
func WithFollowImports() Option {
	return func(l *Loader) {
		l.FollowImports = true
		l.Module = true
	}
}

// WithModule parses files as modules.
func WithModule() Option {
	return func(l *Loader) {
		l.Module = true
	}
}

// WithEnvironment sets the parse environment. The default is config.New().
func WithEnvironment(env *config.Environment) Option {
	return func(l *Loader) {
		l.env = env
	}
}

// WithLogger sets the logger for load and cache events.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.log = logger
	}
}

// WithCacheSize sets the number of cached parse results. Zero or less
// disables the cache.
func WithCacheSize(size int) Option {
	return func(l *Loader) {
		l.cacheSize = size
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		cacheSize: DefaultCacheSize,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.env == nil {
		l.env = config.New()
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	if l.cacheSize > 0 {
		// lru.New only fails for a non-positive size.
		l.cache, _ = lru.New(l.cacheSize)
	}

	return l
}

// File is one parsed source file.
type File struct {
	Path   string
	Source *source.Source
	// Tree is nil when the parse was aborted.
	Tree *ast.Function
	// Errors holds every diagnostic reported while parsing the file.
	Errors *errors.Manager
	// Err is the error that aborted the parse, if any.
	Err error
	// Cached is set when the result came from the parse cache.
	Cached bool
}

// HasErrors reports whether parsing the file produced any error.
func (f *File) HasErrors() bool {
	return f.Err != nil || f.Errors.HasErrors()
}

// Diagnostics returns the file's errors in report order, including the
// error that aborted the parse when the manager did not record it.
func (f *File) Diagnostics() []error {
	errs := f.Errors.Errors()
	if f.Err == nil {
		return errs
	}
	for _, err := range errs {
		if err == f.Err {
			return errs
		}
	}
	return append(append([]error(nil), errs...), f.Err)
}

// Unresolved is a relative module request that names no existing file.
type Unresolved struct {
	From    string `json:"from"`
	Request string `json:"request"`
}

// Result contains everything a Load produced.
type Result struct {
	// Root is the absolute path of the entry file, or StdinName.
	Root string
	// Files lists every loaded file, the entry file first.
	Files []*File
	// Unresolved lists relative requests that could not be resolved.
	Unresolved []Unresolved
}

// RootFile returns the entry file.
func (r *Result) RootFile() *File {
	return r.Files[0]
}

// ErrorCount returns the number of errors across all files.
func (r *Result) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Diagnostics())
	}
	return n
}

// Load parses filename and, in follow mode, everything it imports.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
	}
	src, err := source.ReadFile(absPath)
	if err != nil {
		return nil, err
	}
	return l.load(ctx, absPath, src)
}

// LoadBytes parses data as the content of filename. Imports are resolved
// relative to filename's directory; use StdinName for standard input, in
// which case they are resolved from the working directory.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	name := filename
	if name != StdinName {
		absPath, err := filepath.Abs(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for %s: %w", filename, err)
		}
		name = absPath
	}
	src, err := source.New(name, string(data))
	if err != nil {
		return nil, err
	}
	return l.load(ctx, name, src)
}

func (l *Loader) load(ctx context.Context, root string, src *source.Source) (*Result, error) {
	timer := telemetry.FromContext(ctx).Start("load " + filepath.Base(root))
	defer timer.End()

	state := &loaderState{
		loader:  l,
		result:  &Result{Root: root},
		visited: map[string]bool{root: true},
	}
	if err := state.visit(ctx, timer, root, src); err != nil {
		return nil, err
	}
	return state.result, nil
}

// loaderState tracks state during recursive loading.
type loaderState struct {
	loader  *Loader
	result  *Result
	visited map[string]bool
}

func (s *loaderState) visit(ctx context.Context, timer telemetry.Timer, path string, src *source.Source) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	file := s.loader.parse(timer, path, src)
	s.result.Files = append(s.result.Files, file)

	if !s.loader.FollowImports || file.Tree == nil || file.Tree.Module == nil {
		return nil
	}

	for _, request := range file.Tree.Module.Requests {
		if !isRelative(request) {
			s.loader.log.Debug("skipping bare module request",
				zap.String("source", path), zap.String("request", request))
			continue
		}
		resolved, ok := Resolve(path, request)
		if !ok {
			s.result.Unresolved = append(s.result.Unresolved, Unresolved{From: path, Request: request})
			continue
		}
		if s.visited[resolved] {
			continue
		}
		s.visited[resolved] = true

		dep, err := source.ReadFile(resolved)
		if err != nil {
			return fmt.Errorf("in file %s: %w", path, err)
		}
		if err := s.visit(ctx, timer, resolved, dep); err != nil {
			return err
		}
	}
	return nil
}

type cacheEntry struct {
	tree *ast.Function
	errs *errors.Manager
	err  error
}

func (l *Loader) cacheKey(src *source.Source) string {
	mode := "script"
	if l.Module {
		mode = "module"
	}
	return src.Digest() + "|" + l.env.Fingerprint() + "|" + mode
}

func (l *Loader) parse(timer telemetry.Timer, path string, src *source.Source) *File {
	child := timer.Child("parse " + filepath.Base(path))
	defer child.End()
	child.SetBytes(src.Len())

	file := &File{Path: path, Source: src}

	var key string
	if l.cache != nil {
		key = l.cacheKey(src)
		if v, ok := l.cache.Get(key); ok {
			entry := v.(*cacheEntry)
			l.log.Debug("parse cache hit", zap.String("source", path))
			file.Tree, file.Errors, file.Err, file.Cached = entry.tree, entry.errs, entry.err, true
			return file
		}
		l.log.Debug("parse cache miss", zap.String("source", path))
	}

	file.Errors = errors.NewManager()
	p := parser.New(src, l.env, file.Errors)
	if l.Module {
		file.Tree, file.Err = p.ParseModule()
	} else {
		file.Tree, file.Err = p.Parse()
	}
	if file.Err != nil {
		l.log.Debug("parse aborted", zap.String("source", path), zap.Error(file.Err))
	}

	if l.cache != nil {
		l.cache.Add(key, &cacheEntry{tree: file.Tree, errs: file.Errors, err: file.Err})
	}
	return file
}

func isRelative(request string) bool {
	return strings.HasPrefix(request, "./") || strings.HasPrefix(request, "../") || strings.HasPrefix(request, "/")
}

// Resolve maps a module request made by the file at from to an absolute
// path. A request naming no file is retried with each of Extensions
// appended, then as a directory holding index.js. It reports false when
// nothing exists.
func Resolve(from, request string) (string, bool) {
	target := request
	if !filepath.IsAbs(target) {
		base := "."
		if from != StdinName {
			base = filepath.Dir(from)
		}
		target = filepath.Join(base, filepath.FromSlash(request))
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}

	candidates := []string{target}
	for _, ext := range Extensions {
		candidates = append(candidates, target+ext)
	}
	candidates = append(candidates, filepath.Join(target, "index.js"))

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}
