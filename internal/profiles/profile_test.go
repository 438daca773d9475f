package profiles

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		src  map[string]any
		want Profile
	}{
		{name: "nil source", src: nil, want: Default()},
		{name: "empty source", src: map[string]any{}, want: Default()},
		{
			name: "all fields",
			src: map[string]any{
				"name": "Alice", "email": "a@example.com", "status": "面接",
				"role": "backend", "notes": "strong", "avatarData": "data:image/png;base64,AAA",
			},
			want: Profile{
				Name: "Alice", Email: "a@example.com", Status: "面接",
				Role: "backend", Notes: "strong", AvatarData: ptr("data:image/png;base64,AAA"),
			},
		},
		{
			name: "null text fields become empty",
			src:  map[string]any{"name": nil, "email": nil, "role": nil, "notes": nil},
			want: Default(),
		},
		{name: "null status", src: map[string]any{"status": nil}, want: Default()},
		{name: "empty status", src: map[string]any{"status": ""}, want: Default()},
		{name: "null avatar", src: map[string]any{"avatarData": nil}, want: Default()},
		{
			name: "non string values are stringified",
			src:  map[string]any{"name": float64(42), "notes": true},
			want: Profile{Name: "42", Notes: "true", Status: DefaultStatus},
		},
		{
			name: "non string avatar is null",
			src:  map[string]any{"avatarData": int64(7)},
			want: Default(),
		},
		{
			name: "unknown keys ignored",
			src:  map[string]any{"name": "Bob", "salary": 100},
			want: Profile{Name: "Bob", Status: DefaultStatus},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_DefaultRoundTrip(t *testing.T) {
	assert.Equal(t, Default(), Merge(ToRecord(Default())))
}

func TestMerge_StatusNeverEmpty(t *testing.T) {
	for _, src := range []map[string]any{
		{},
		{"status": ""},
		{"status": nil},
		{"name": "x"},
	} {
		assert.Equal(t, DefaultStatus, Merge(src).Status, "src=%v", src)
	}
}

func TestToRecord_RoundTrip(t *testing.T) {
	p := Profile{
		Name: "Alice", Email: "a@example.com", Status: "内定", Role: "sre", Notes: "n",
		AvatarData: ptr("img"),
		UpdatedAt:  time.Date(2025, 12, 10, 10, 0, 0, 123, time.UTC),
	}

	rec := ToRecord(p)
	assert.Contains(t, rec, "updated_at")
	assert.Equal(t, p, Merge(rec))
}

func TestToRecord_AvatarAlwaysWritten(t *testing.T) {
	rec := ToRecord(Default())
	v, ok := rec["avatarData"]
	require.True(t, ok)
	assert.Nil(t, v)
	assert.NotContains(t, rec, "updated_at")
}
