package feed

import (
	"regexp"
	"sync"

	"github.com/karmabot/karmalog/internal/logging"
)

// Registry owns the mapping from monitored projects to their delivery
// targets. It replaces ambient shared state: the host composes one
// registry and hands it to the components that need it.
type Registry struct {
	mu       sync.Mutex
	projects map[string][]Target
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{projects: make(map[string][]Target)}
}

// The two recognized Google Code feed URL shapes.
var (
	projectPageRe = regexp.MustCompile(`^http://code\.google\.com/p/([^/]+)/`)
	projectHostRe = regexp.MustCompile(`^http://([^./]+)\.googlecode\.com/`)
)

// ProjectFromURL extracts the project name from a recognized feed URL
// shape. The second result is false for unrecognized shapes.
func ProjectFromURL(url string) (string, bool) {
	if m := projectPageRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := projectHostRe.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}

// RegisterFeed adds a (project, target) pair derived from a feed URL.
// Unrecognized URL shapes are logged and ignored; re-registering an
// existing pair is a no-op. Returns the project name when registered.
func (r *Registry) RegisterFeed(url string, target Target) (string, bool) {
	project, ok := ProjectFromURL(url)
	if !ok {
		logging.Warn("ignoring unrecognized feed URL", "url", url)
		return "", false
	}
	r.Add(project, target)
	return project, true
}

// Add registers a delivery target for a project. Idempotent.
func (r *Registry) Add(project string, target Target) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.projects[project] {
		if t == target {
			return
		}
	}
	r.projects[project] = append(r.projects[project], target)
}

// Targets returns the delivery targets registered for a project.
func (r *Registry) Targets(project string) []Target {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets := make([]Target, len(r.projects[project]))
	copy(targets, r.projects[project])
	return targets
}

// Projects returns the names of all registered projects.
func (r *Registry) Projects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.projects))
	for name := range r.projects {
		names = append(names, name)
	}
	return names
}
