// Package registry provides a global registry of built-in courses.
// Courses register themselves in init() functions, allowing the CLI and
// the SSH server to list and build them without hardcoded dependencies.
package registry

import (
	"fmt"
	"image"
	"sort"
	"sync"
)

// Course draws a course image. Opaque pixels are obstacles, transparent
// pixels are open ground.
type Course interface {
	// ID returns a unique identifier used on the command line (e.g. "oval").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Render draws the course at w×h. Procedural courses use seed; the
	// same arguments always give the same image.
	Render(w, h int, seed int64) image.Image
}

// CourseInfo contains metadata about a registered course.
type CourseInfo struct {
	ID    string
	Title string
}

// Factory creates a course.
type Factory func() Course

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a course factory to the registry.
// Panics if a course with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: course %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered courses, sorted by ID.
func List() []CourseInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CourseInfo, 0, len(factories))
	for id := range factories {
		result = append(result, CourseInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a course by its ID.
func Create(id string) (Course, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown course %q", id)
	}

	return f(), nil
}

// Exists checks if a course with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
