package workers

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dsplab/pkg/flow"
	"github.com/randalmurphal/dsplab/pkg/flow/config"
)

func double(args ...any) (any, error) {
	return args[0].(float64) * 2, nil
}

func gainFactory(p config.Params) (flow.Worker, error) {
	if !p.Has("k") {
		return nil, errors.New("gain: k is required")
	}
	k := p.Float("k", 1)
	return func(args ...any) (any, error) {
		return k * args[0].(float64), nil
	}, nil
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names(KindFunction))
	assert.Empty(t, r.Names(KindClass))
}

func TestRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction("double", double)
	r.RegisterClass("gain", gainFactory)

	w, ok := r.Function("double")
	require.True(t, ok)
	got, err := w(2.0)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	_, ok = r.Class("gain")
	assert.True(t, ok)

	_, ok = r.Function("gain")
	assert.False(t, ok, "namespaces are separate")
	assert.Equal(t, 2, r.Len())
}

func TestNames_Sorted(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction("zeta", double)
	r.RegisterFunction("alpha", double)
	r.RegisterFunction("mid", double)
	r.RegisterClass("gain", gainFactory)

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, r.Names(KindFunction))
	assert.Equal(t, []string{"gain"}, r.Names(KindClass))
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction("x", double)
	r.RegisterClass("x", gainFactory)

	r.Unregister("x")

	assert.Equal(t, 0, r.Len())
}

func TestResolve_Function(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction("double", double)

	w, err := r.Resolve(KindFunction, "double", nil)
	require.NoError(t, err)
	got, err := w(1.5)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	w, err = r.Resolve(KindFunction, "double", map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, w)
}

func TestResolve_Class(t *testing.T) {
	r := NewRegistry()
	r.RegisterClass("gain", gainFactory)

	w, err := r.Resolve(KindClass, "gain", map[string]any{"k": 3})
	require.NoError(t, err)
	got, err := w(2.0)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
}

func TestResolve_Errors(t *testing.T) {
	r := NewRegistry()
	r.RegisterFunction("double", double)
	r.RegisterClass("gain", gainFactory)
	r.RegisterClass("broken", func(config.Params) (flow.Worker, error) { return nil, nil })

	tests := []struct {
		name    string
		kind    Kind
		worker  string
		params  map[string]any
		wantErr error
		wantMsg string
	}{
		{"unknown function", KindFunction, "nope", nil, ErrWorkerNotFound, ""},
		{"unknown class", KindClass, "nope", nil, ErrWorkerNotFound, ""},
		{"function is not a class", KindClass, "double", nil, ErrWorkerNotFound, ""},
		{"params for function", KindFunction, "double", map[string]any{"k": 1}, ErrParamsForFunction, ""},
		{"factory error", KindClass, "gain", nil, nil, "gain: k is required"},
		{"nil worker", KindClass, "broken", nil, ErrNilFactory, ""},
		{"unknown kind", Kind(9), "double", nil, nil, "unknown worker kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := r.Resolve(tt.kind, tt.worker, tt.params)
			require.Error(t, err)
			assert.Nil(t, w)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "function", KindFunction.String())
	assert.Equal(t, "class", KindClass.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.RegisterFunction(fmt.Sprintf("f%d", i), double)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Resolve(KindFunction, fmt.Sprintf("f%d", i), nil)
			_ = r.Names(KindFunction)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
}
