package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelHandle_LoadsOnce(t *testing.T) {
	var loads atomic.Int32
	h := NewModelHandle(func() (AnomalyModel, error) {
		loads.Add(1)
		return DefaultEnvelopeModel(), nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := h.Get()
			assert.NoError(t, err)
			assert.NotNil(t, m)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
}

func TestModelHandle_ErrorIsSticky(t *testing.T) {
	calls := 0
	h := NewModelHandle(func() (AnomalyModel, error) {
		calls++
		return nil, errors.New("boom")
	})

	_, err1 := h.Get()
	_, err2 := h.Get()

	assert.Error(t, err1)
	assert.Equal(t, err1, err2)
	assert.Equal(t, 1, calls)
}

type countingModel struct {
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (m *countingModel) Predict(_ context.Context, features [][]float64) ([]int, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		seen := m.maxSeen.Load()
		if n <= seen || m.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	return make([]int, len(features)), nil
}

func TestSerializeModel(t *testing.T) {
	inner := &countingModel{}
	m := SerializeModel(inner)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Predict(context.Background(), [][]float64{{1, 2, 3, 4}})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), inner.maxSeen.Load())
	assert.Nil(t, SerializeModel(nil))
}
