package models

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name string
		s    StringSlice
		want driver.Value
	}{
		{"nil slice", nil, "[]"},
		{"empty slice", StringSlice{}, "[]"},
		{"options with separators", StringSlice{"a|||b", `say "hi"`}, `["a|||b","say \"hi\""]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    StringSlice
		wantErr bool
	}{
		{"bytes", []byte(`["a","b"]`), StringSlice{"a", "b"}, false},
		{"string", `["x"]`, StringSlice{"x"}, false},
		{"NULL", nil, StringSlice{}, false},
		{"empty", "", StringSlice{}, false},
		{"json null", "null", StringSlice{}, false},
		{"not json", "a,b", nil, true},
		{"unsupported", 42, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestIntSlice_RoundTrip(t *testing.T) {
	v, err := IntSlice{-1, 2, 0}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[-1,2,0]", v)

	var s IntSlice
	require.NoError(t, s.Scan([]byte(v.(string))))
	assert.Equal(t, IntSlice{-1, 2, 0}, s)

	require.NoError(t, s.Scan(nil))
	assert.Equal(t, IntSlice{}, s)
}
