package builder

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dsplab/pkg/flow"
	"github.com/randalmurphal/dsplab/pkg/flow/config"
	"github.com/randalmurphal/dsplab/pkg/flow/descr"
	"github.com/randalmurphal/dsplab/pkg/flow/store"
	"github.com/randalmurphal/dsplab/pkg/flow/workers"
)

func linearFactory(p config.Params) (flow.Worker, error) {
	k := p.Float("k", 1)
	b := p.Float("b", 0)
	return func(args ...any) (any, error) {
		return k*args[0].(float64) + b, nil
	}, nil
}

// gainFactory scales every sample of a list input.
func gainFactory(p config.Params) (flow.Worker, error) {
	if !p.Has("k") {
		return nil, errors.New("gain: k is required")
	}
	k := p.Float("k", 1)
	b := p.Float("b", 0)
	if len(p.FloatSlice("taps", nil)) == 0 {
		return nil, errors.New("gain: taps are required")
	}
	return func(args ...any) (any, error) {
		in := args[0].([]any)
		out := make([]any, len(in))
		for i, x := range in {
			out[i] = k*x.(float64) + b
		}
		return out, nil
	}, nil
}

func abs(args ...any) (any, error) {
	return math.Abs(args[0].(float64)), nil
}

func testRegistry() *workers.Registry {
	reg := workers.NewRegistry()
	reg.RegisterClass("linear", linearFactory)
	reg.RegisterClass("gain", gainFactory)
	reg.RegisterFunction("abs", abs)
	return reg
}

func TestBuild_LinearChain(t *testing.T) {
	plan, err := FromFile(filepath.Join("testdata", "linear.json"), testRegistry(), map[string]any{"k": 2})
	require.NoError(t, err)

	assert.Equal(t, "linear chain", plan.Descr())
	require.Len(t, plan.Nodes(), 3)
	assert.Equal(t, "c", plan.Nodes()[0].ID())
	assert.Equal(t, "third", plan.Nodes()[0].Descr())

	results, err := plan.Run(context.Background(), []any{5.0})
	require.NoError(t, err)
	assert.Equal(t, []any{45.0}, results)

	quick, err := plan.QuickRun(context.Background(), []any{5.0})
	require.NoError(t, err)
	assert.Equal(t, results, quick)
}

func TestBuild_AllNodeClasses(t *testing.T) {
	for _, name := range []string{"chain.yaml", "chain.hcl"} {
		t.Run(name, func(t *testing.T) {
			plan, err := FromFile(filepath.Join("testdata", name), testRegistry(), map[string]any{"offset": -2.0})
			require.NoError(t, err)

			kinds := make(map[string]flow.Kind)
			for _, n := range plan.Nodes() {
				kinds[n.ID()] = n.Kind()
			}
			assert.Equal(t, map[string]flow.Kind{
				"a": flow.KindWork,
				"m": flow.KindMap,
				"s": flow.KindSelect,
				"p": flow.KindPack,
			}, kinds)

			nodes := plan.Nodes()
			assert.Equal(t, "second sample", nodes[2].ResultInfo())
			assert.Equal(t, 1, nodes[2].Index())
			assert.Equal(t, "abs", nodes[1].Descr(), "work descr defaults to the worker name")

			results, err := plan.Run(context.Background(), []any{[]any{-4.0, 6.0}})
			require.NoError(t, err)
			assert.Equal(t, []any{[]any{[]any{-4.0, 1.0}, 1.0}}, results)
		})
	}
}

func TestBuild_PassNode(t *testing.T) {
	d := &descr.Plan{
		Nodes: []descr.Node{
			{ID: "in", Class: "PassNode"},
			{ID: "abs", Inputs: []string{"in"}, Work: &descr.Work{Worker: &descr.Worker{Function: "abs"}}},
		},
		Inputs:  []string{"in"},
		Outputs: []string{"abs", "in"},
	}

	plan, err := Build(d, testRegistry(), nil)
	require.NoError(t, err)

	results, err := plan.Run(context.Background(), []any{-3.0})
	require.NoError(t, err)
	assert.Equal(t, []any{3.0, -3.0}, results)
}

func TestBuild_AppliesOptions(t *testing.T) {
	d := &descr.Plan{
		Nodes:   []descr.Node{{ID: "a", Work: &descr.Work{Worker: &descr.Worker{Function: "abs"}}}},
		Inputs:  []string{"a"},
		Outputs: []string{"a"},
	}

	plan, err := Build(d, testRegistry(), nil, flow.WithDescr("fallback"), flow.WithQuick(true))
	require.NoError(t, err)

	assert.Equal(t, "fallback", plan.Descr())
	assert.True(t, plan.Quick())

	got, err := plan.Call(-1.5)
	require.NoError(t, err)
	assert.Equal(t, []any{1.5}, got)
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		descr   *descr.Plan
		params  map[string]any
		wantErr error
		wantMsg string
	}{
		{
			name: "duplicate id",
			descr: &descr.Plan{
				Nodes: []descr.Node{
					{ID: "a", Work: &descr.Work{Worker: &descr.Worker{Function: "abs"}}},
					{ID: "b", Class: "PassNode", Inputs: []string{"a"}},
					{ID: "b", Class: "PassNode", Inputs: []string{"a"}},
				},
				Inputs:  []string{"a"},
				Outputs: []string{"b"},
			},
			wantErr: descr.ErrDuplicateID,
			wantMsg: "nodes[2].id",
		},
		{
			name: "unknown function",
			descr: &descr.Plan{
				Nodes:   []descr.Node{{ID: "a", Work: &descr.Work{Worker: &descr.Worker{Function: "fft"}}}},
				Inputs:  []string{"a"},
				Outputs: []string{"a"},
			},
			wantErr: workers.ErrWorkerNotFound,
			wantMsg: "node a: worker not found: function fft",
		},
		{
			name: "params for function",
			descr: &descr.Plan{
				Nodes: []descr.Node{{ID: "a", Work: &descr.Work{Worker: &descr.Worker{
					Function: "abs",
					Params:   map[string]any{"k": 1.0},
				}}}},
				Inputs:  []string{"a"},
				Outputs: []string{"a"},
			},
			wantErr: workers.ErrParamsForFunction,
		},
		{
			name: "factory failure",
			descr: &descr.Plan{
				Nodes: []descr.Node{{ID: "a", Work: &descr.Work{Worker: &descr.Worker{
					Class:  "gain",
					Params: map[string]any{"k": 1.0},
				}}}},
				Inputs:  []string{"a"},
				Outputs: []string{"a"},
			},
			wantMsg: "gain: taps are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := Build(tt.descr, testRegistry(), tt.params)
			require.Error(t, err)
			assert.Nil(t, plan, "no partial plan on error")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestBuild_UndefinedParameter(t *testing.T) {
	plan, err := FromFile(filepath.Join("testdata", "chain.yaml"), testRegistry(), nil)
	require.Error(t, err)
	assert.Nil(t, plan)

	var undefined *UndefinedParameterError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "a", undefined.Node)
	assert.Equal(t, []string{"offset"}, undefined.Names)
}

func TestBuild_NilRegistry(t *testing.T) {
	d := &descr.Plan{
		Nodes:   []descr.Node{{ID: "a", Class: "PassNode"}},
		Inputs:  []string{"a"},
		Outputs: []string{"a"},
	}

	plan, err := Build(d, nil, nil)
	require.NoError(t, err)

	results, err := plan.Run(context.Background(), []any{"x"})
	require.NoError(t, err)
	assert.Equal(t, []any{"x"}, results)
}

func TestBuild_DoesNotModifyDescription(t *testing.T) {
	d, err := descr.FromFile(filepath.Join("testdata", "chain.yaml"))
	require.NoError(t, err)

	_, err = Build(d, testRegistry(), map[string]any{"offset": 1.0})
	require.NoError(t, err)

	assert.Equal(t, "$offset", d.Nodes[0].Work.Worker.Params["b"])
}

func TestFromMap(t *testing.T) {
	m := map[string]any{
		"nodes": []any{
			map[string]any{"id": "in", "class": "PassNode"},
			map[string]any{"id": "pick", "class": "SelectNode", "index": -1, "inputs": []any{"in"}},
		},
		"inputs":  []any{"in"},
		"outputs": []any{"pick"},
	}

	plan, err := FromMap(m, nil, nil)
	require.NoError(t, err)

	results, err := plan.Run(context.Background(), []any{[]any{1, 2, 3}})
	require.NoError(t, err)
	assert.Equal(t, []any{3}, results)

	_, err = FromMap(map[string]any{"nodes": []any{}, "bogus": true}, nil, nil)
	assert.ErrorIs(t, err, descr.ErrSchema)
}

func TestFromStore(t *testing.T) {
	s := store.NewMemoryStore()
	defer func() { _ = s.Close() }()

	d, err := descr.FromFile(filepath.Join("testdata", "linear.json"))
	require.NoError(t, err)
	require.NoError(t, store.SaveDescr(s, "linear", d))

	plan, err := FromStore(s, "linear", testRegistry(), map[string]any{"k": 2.0})
	require.NoError(t, err)

	results, err := plan.Run(context.Background(), []any{5.0})
	require.NoError(t, err)
	assert.Equal(t, []any{45.0}, results)

	_, err = FromStore(s, "missing", testRegistry(), nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
