package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"", KindWork},
		{"WorkNode", KindWork},
		{"MapNode", KindMap},
		{"SelectNode", KindSelect},
		{"PackNode", KindPack},
		{"PassNode", KindPass},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseKind("FilterNode")
	assert.Error(t, err)
}

func TestKind_StringRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindWork, KindMap, KindSelect, KindPack, KindPass} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.True(t, KindMap.HasWork())
	assert.False(t, KindPack.HasWork())
}

func TestWorkNode_Call(t *testing.T) {
	n := NewWorkNode(NewWork("sum", sum))

	res, err := n.Call(1.0, 2.0, 3.0)

	require.NoError(t, err)
	assert.Equal(t, 6.0, res)
	got, ok := n.Result()
	assert.True(t, ok)
	assert.Equal(t, 6.0, got)
}

func TestWorkNode_NoWork(t *testing.T) {
	n := NewWorkNode(nil)

	_, err := n.Call(1.0)

	assert.ErrorIs(t, err, ErrNoWork)
	assert.False(t, n.Ready())
}

func TestMapNode_SingleInput(t *testing.T) {
	n := NewMapNode(NewWork("double", linear(2, 0)))

	res, err := n.Call([]float64{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, []any{2.0, 4.0, 6.0}, res)
}

func TestMapNode_SeveralInputs(t *testing.T) {
	n := NewMapNode(NewWork("sum", sum))

	res, err := n.Call([]any{1, 1, 1}, []any{2, 2, 2})

	require.NoError(t, err)
	assert.Equal(t, []any{3.0, 3.0, 3.0}, res)
}

func TestMapNode_Errors(t *testing.T) {
	n := NewMapNode(NewWork("sum", sum))

	_, err := n.Call()
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = n.Call(42)
	assert.ErrorIs(t, err, ErrNotIterable)

	_, err = n.Call([]any{1, 2}, []any{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	failing := NewMapNode(NewWork("fail", makeFailingWorker(errBoom)))
	_, err = failing.Call([]any{1})
	assert.ErrorIs(t, err, errBoom)
}

func TestSelectNode_SingleInput(t *testing.T) {
	n := NewSelectNode(1)

	res, err := n.Call([]string{"a", "b", "c"})

	require.NoError(t, err)
	assert.Equal(t, "b", res)
}

func TestSelectNode_NegativeIndex(t *testing.T) {
	n := NewSelectNode(-1)

	res, err := n.Call([]any{1, 2, 3})

	require.NoError(t, err)
	assert.Equal(t, 3, res)
}

func TestSelectNode_SeveralInputsSelectsColumn(t *testing.T) {
	n := NewSelectNode(0)

	res, err := n.Call([]any{1, 2, 3}, []any{2, 3, 4})

	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, res)
}

func TestSelectNode_Errors(t *testing.T) {
	_, err := NewSelectNode(0).Call()
	assert.ErrorIs(t, err, ErrNoInputs)

	_, err = NewSelectNode(5).Call([]any{1, 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = NewSelectNode(-3).Call([]any{1, 2})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = NewSelectNode(0).Call("abc")
	assert.ErrorIs(t, err, ErrNotIterable)
}

func TestPackNode_Call(t *testing.T) {
	n := NewPackNode()

	res, err := n.Call(1, "two")
	require.NoError(t, err)
	assert.Equal(t, []any{1, "two"}, res)

	res, err = n.Call()
	require.NoError(t, err)
	assert.Equal(t, []any{}, res)
}

func TestPassNode_Call(t *testing.T) {
	n := NewPassNode()

	res, err := n.Call("first", "second")
	require.NoError(t, err)
	assert.Equal(t, "first", res)

	_, err = NewPassNode().Call()
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestNode_NilResultIsReady(t *testing.T) {
	n := NewWorkNode(NewWork("nil", func(args ...any) (any, error) { return nil, nil }))

	_, err := n.Call()

	require.NoError(t, err)
	assert.True(t, n.Ready())
	n.ClearResult()
	assert.False(t, n.Ready())
}

func TestNode_FailureLeavesNoResult(t *testing.T) {
	n := NewWorkNode(NewWork("ok", identity))
	_, err := n.Call(1)
	require.NoError(t, err)

	n.SetWork(NewWork("fail", makeFailingWorker(errBoom)))
	n.ClearResult()
	_, err = n.Call(2)

	assert.ErrorIs(t, err, errBoom)
	_, ok := n.Result()
	assert.False(t, ok)
}

func TestNode_PanicIsRecovered(t *testing.T) {
	n := workNode("explode", makePanicWorker("kaboom"))

	_, err := n.Call(1)

	var panicErr *PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "explode", panicErr.NodeID)
	assert.Equal(t, "kaboom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

func TestNode_Descr(t *testing.T) {
	assert.Equal(t, "scale", NewWorkNode(NewWork("scale", identity)).Descr())
	assert.Equal(t, "PackNode", NewPackNode().Descr())
}

func TestNode_ResultInfoAndID(t *testing.T) {
	n := NewPassNode()
	n.SetID("p")
	n.SetResultInfo("Signal")

	assert.Equal(t, "p", n.ID())
	assert.Equal(t, "Signal", n.ResultInfo())
}

func TestNode_InputsAreCopied(t *testing.T) {
	a := NewPassNode()
	n := NewPackNode(a)

	inputs := n.Inputs()
	inputs[0] = nil

	assert.Equal(t, []*Node{a}, n.Inputs())
}

func TestNode_SetInputsChecksPlanMembership(t *testing.T) {
	p := quietPlan()
	a := workNode("a", identity)
	b := workNode("b", identity)
	stranger := workNode("stranger", identity)
	mustAdd(p, a)
	mustAdd(p, b)

	err := b.SetInputs(stranger)
	assert.ErrorIs(t, err, ErrForeignInput)

	require.NoError(t, b.SetInputs(a))
	assert.Equal(t, []*Node{a}, b.Inputs())

	assert.ErrorIs(t, b.SetInputs(nil), ErrNilNode)
}

func TestBindHook(t *testing.T) {
	var got []any
	h := BindHook(func(args ...any) { got = args }, "node", 3)

	h()

	assert.Equal(t, []any{"node", 3}, got)
	assert.Nil(t, BindHook(nil, 1))
}
