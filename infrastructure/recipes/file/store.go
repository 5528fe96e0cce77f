// ABOUTME: Recipe store backed by a directory of JSON and YAML recipe files
// ABOUTME: A recipe's name is its file name without the extension

package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	coreerrors "recipe-cook-api/core/errors"
	"recipe-cook-api/core/interfaces"
	"recipe-cook-api/core/recipe"
)

// Extensions lists the file extensions the store loads.
var Extensions = []string{".json", ".yaml", ".yml"}

// Store implements interfaces.RecipeStore over a directory.
type Store struct {
	dir    string
	logger interfaces.Logger

	mu      sync.RWMutex
	recipes map[string]*recipe.Recipe
}

// NewStore loads every recipe under dir. A missing directory yields an empty
// store; an unreadable or malformed file is an error.
func NewStore(dir string, logger interfaces.Logger) (*Store, error) {
	s := &Store{
		dir:     dir,
		logger:  logger,
		recipes: make(map[string]*recipe.Recipe),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload rescans the directory and replaces the loaded set atomically.
func (s *Store) Reload() error {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.recipes = make(map[string]*recipe.Recipe)
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read recipe directory %s: %w", s.dir, err)
	}

	loaded := make(map[string]*recipe.Recipe)
	sources := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !supported(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		name := recipe.NameFromFile(path)
		if prev, dup := sources[name]; dup {
			return fmt.Errorf("recipe %q defined by both %s and %s", name, prev, entry.Name())
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read recipe %s: %w", path, err)
		}
		r, err := recipe.Parse(data)
		if err != nil {
			return fmt.Errorf("failed to load recipe %s: %w", path, err)
		}
		loaded[name] = r
		sources[name] = entry.Name()
	}

	s.mu.Lock()
	s.recipes = loaded
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("Recipes loaded", map[string]interface{}{
			"dir":   s.dir,
			"count": len(loaded),
		})
	}
	return nil
}

func supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Get returns a copy of the named recipe.
func (s *Store) Get(ctx context.Context, name string) (*recipe.Recipe, error) {
	s.mu.RLock()
	r, ok := s.recipes[name]
	s.mu.RUnlock()
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "recipe", ID: name}
	}
	return r.Clone(), nil
}

// List returns the recipe names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.recipes))
	for name := range s.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
