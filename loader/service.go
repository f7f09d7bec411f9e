package loader

import (
	"context"
	"sync"
)

// Service is a process-scoped handle over the parsing front end, shared by
// every file in a batch. The underlying Loader is built once, on first use,
// and is read-only afterwards, so concurrent per-file loads need no
// locking. Pass the Service by reference into each pipeline invocation
// instead of reaching for ambient global state.
type Service struct {
	once   sync.Once
	loader *Loader
	opts   []Option
}

// NewService creates a Service. The Loader itself is not built until the
// first load request.
func NewService(opts ...Option) *Service {
	return &Service{opts: opts}
}

// Loader returns the shared Loader, initializing it on first call.
func (s *Service) Loader() *Loader {
	s.once.Do(func() {
		s.loader = New(s.opts...)
	})
	return s.loader
}

// Load reads and parses the file at path through the shared Loader.
func (s *Service) Load(ctx context.Context, path string) (*File, error) {
	return s.Loader().Load(ctx, path)
}

// LoadBytes parses in-memory content through the shared Loader.
func (s *Service) LoadBytes(ctx context.Context, filename string, content []byte) (*File, error) {
	return s.Loader().LoadBytes(ctx, filename, content)
}
