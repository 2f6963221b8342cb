package service

import "sync"

// ModelHandle loads a read-only model on first use and hands the same
// instance to every caller afterwards. A load error is sticky.
type ModelHandle[T any] struct {
	load func() (T, error)

	once  sync.Once
	model T
	err   error
}

// NewModelHandle returns a handle that calls load at most once.
func NewModelHandle[T any](load func() (T, error)) *ModelHandle[T] {
	return &ModelHandle[T]{load: load}
}

// StaticHandle wraps an already constructed model.
func StaticHandle[T any](model T) *ModelHandle[T] {
	return NewModelHandle(func() (T, error) { return model, nil })
}

// Get returns the loaded model, loading it if needed. Safe for concurrent use.
func (h *ModelHandle[T]) Get() (T, error) {
	if h == nil {
		var zero T
		return zero, nil
	}
	h.once.Do(func() {
		if h.load != nil {
			h.model, h.err = h.load()
		}
	})
	return h.model, h.err
}
