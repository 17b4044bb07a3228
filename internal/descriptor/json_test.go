package descriptor

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/rpgbaker/internal/value"
)

// nest builds an instance of kind whose fields are literals at depth 0 and
// nested instances of the same kind below that.
func nest(kind BuiltinKind, fields []string, depth int) Instance {
	inst := NewInstance(Builtin(kind))
	for i, f := range fields {
		if depth == 0 {
			inst = inst.With(f, LiteralSlot(value.Int(int32(i+1))))
			continue
		}
		inst = inst.With(f, BlockSlot(nest(kind, fields, depth-1)))
	}
	return inst
}

func TestInstance_RoundTripAllKindsAndDepths(t *testing.T) {
	fields := map[BuiltinKind][]string{
		KindInt:          {"v"},
		KindFloat:        {"v"},
		KindText:         {"v"},
		KindAdd:          {"a", "b"},
		KindSub:          {"a", "b"},
		KindMul:          {"a", "b"},
		KindIf:           {"cond", "else", "then"},
		KindLog:          {"what"},
		KindChangeScreen: {"screen"},
	}
	for _, kind := range BuiltinKinds() {
		for depth := 0; depth <= 3; depth++ {
			t.Run(fmt.Sprintf("%s/depth=%d", kind, depth), func(t *testing.T) {
				in := nest(kind, fields[kind], depth)
				require.Equal(t, depth, in.Depth())

				data, err := json.Marshal(in)
				require.NoError(t, err)

				var out Instance
				require.NoError(t, json.Unmarshal(data, &out))
				if diff := cmp.Diff(in, out); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
				assert.True(t, in.Equal(out))
			})
		}
	}
}

func TestInstance_MarshalOrdersFields(t *testing.T) {
	in := NewInstance(Builtin(KindIf)).
		With("then", LiteralSlot(value.Text("yes"))).
		With("cond", LiteralSlot(value.Int(1))).
		With("else", LiteralSlot(value.Float(2)))

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, `{"source":"builtin:if","cond":1,"else":2.0,"then":"yes"}`, string(data))
}

func TestInstance_WireShape(t *testing.T) {
	wire := `{"source":"builtin:add","a":{"source":"builtin:int","v":1},"b":2}`

	var in Instance
	require.NoError(t, json.Unmarshal([]byte(wire), &in))

	want := NewInstance(Builtin(KindAdd)).
		With("a", BlockSlot(NewInstance(Builtin(KindInt)).With("v", LiteralSlot(value.Int(1))))).
		With("b", LiteralSlot(value.Int(2)))
	assert.True(t, want.Equal(in), cmp.Diff(want, in))

	out, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, wire, string(out))
}

func TestInstance_JSONErrors(t *testing.T) {
	var in Instance
	assert.Error(t, json.Unmarshal([]byte(`{"v":1}`), &in), "source is required")
	assert.Error(t, json.Unmarshal([]byte(`{"source":"a:b:c"}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`{"source":"builtin:int","v":[1]}`), &in))

	reserved := Instance{Source: Builtin(KindInt), Content: map[string]Content{
		SourceField: SlotContent(LiteralSlot(value.Int(1))),
	}}
	_, err := json.Marshal(reserved)
	assert.Error(t, err)
}

func TestInstance_Equal(t *testing.T) {
	a := NewInstance(Builtin(KindInt)).With("v", LiteralSlot(value.Int(1)))
	assert.True(t, a.Equal(NewInstance(Builtin(KindInt)).With("v", LiteralSlot(value.Int(1)))))
	assert.False(t, a.Equal(NewInstance(Builtin(KindInt)).With("v", LiteralSlot(value.Int(2)))))
	assert.False(t, a.Equal(NewInstance(Builtin(KindFloat)).With("v", LiteralSlot(value.Int(1)))))
	assert.False(t, a.Equal(NewInstance(Builtin(KindInt))))
	assert.False(t, a.Equal(NewInstance(Builtin(KindInt)).With("v", BlockSlot(a))))
}
