package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_KeepsNestedValues(t *testing.T) {
	in := Record{
		"mode": "training",
		"setup": map[string]any{
			"interviewType":  "Mock Interview",
			"targetIndustry": "Software Engineering",
		},
		"transcript":    []any{map[string]any{"role": "user", "content": "hi"}},
		"last_question": nil,
	}

	body, err := Encode(in)
	require.NoError(t, err)

	out, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, hasNull := out["last_question"]
	assert.True(t, hasNull, "explicit null keys must survive")
}

func TestEncode_NilIsEmptyObject(t *testing.T) {
	body, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}", body)
}

func TestDecode_EmptyBodyAndGarbage(t *testing.T) {
	r, err := Decode("")
	require.NoError(t, err)
	assert.Empty(t, r)

	_, err = Decode("{not json")
	require.Error(t, err)
}

func TestClone_IsShallowCopy(t *testing.T) {
	orig := Record{"a": "1"}
	c := orig.Clone()
	c["a"] = "2"
	c["b"] = "3"
	assert.Equal(t, Record{"a": "1"}, orig)
}

func TestOwnerOf(t *testing.T) {
	assert.Equal(t, "u1", ownerOf("i-1", Record{"user_id": "u1"}))
	assert.Equal(t, "u2", ownerOf("u2", Record{"name": "x"}))
	assert.Equal(t, "u3", ownerOf("u3", Record{"user_id": 42}))
}

func TestConvert_RecordToStruct(t *testing.T) {
	var dst struct {
		Mode  string         `json:"mode"`
		Setup map[string]any `json:"setup"`
	}
	require.NoError(t, Convert(Record{"mode": "real", "setup": map[string]any{"k": "v"}}, &dst))
	assert.Equal(t, "real", dst.Mode)
	assert.Equal(t, map[string]any{"k": "v"}, dst.Setup)
}

func TestDecode_KeepsLargeIntegers(t *testing.T) {
	in := Record{"setup": map[string]any{"seed": int64(9007199254740993), "ratio": 0.5}}

	body, err := Encode(in)
	require.NoError(t, err)
	assert.Contains(t, body, "9007199254740993")

	out, err := Decode(body)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestConvert_KeepsLargeIntegers(t *testing.T) {
	var dst struct {
		Setup any `json:"setup"`
	}
	require.NoError(t, Convert(Record{"setup": map[string]any{"seed": int64(9007199254740993)}}, &dst))
	assert.Equal(t, map[string]any{"seed": int64(9007199254740993)}, dst.Setup)
}
