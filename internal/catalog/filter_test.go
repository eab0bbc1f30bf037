package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/dremcat/internal/errs"
)

func TestFilterExcluded(t *testing.T) {
	tests := []struct {
		name     string
		includes []string
		excludes []string
		target   string
		want     bool
	}{
		{"empty filter passes everything", nil, nil, "sales", false},
		{"exclude pattern matches", nil, []string{"^hr$"}, "hr", true},
		{"exclude pattern misses", nil, []string{"^hr$"}, "sales", false},
		{"include pattern matches", []string{"^sales$"}, nil, "sales", false},
		{"include patterns exist but none match", []string{"^sales$"}, nil, "hr", true},
		{"exclude wins over include", []string{".*"}, []string{"^hr$"}, "hr", true},
		{"fqn-style target", nil, []string{"\\.hr$"}, "svc.hr", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.includes, tt.excludes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Excluded(tt.target))
		})
	}
}

func TestFilter_NilPassesEverything(t *testing.T) {
	var f *Filter
	assert.False(t, f.Excluded("anything"))
}

func TestNewFilter_BadPattern(t *testing.T) {
	_, err := NewFilter([]string{"("}, nil)
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))

	_, err = NewFilter(nil, []string{"("})
	require.Error(t, err)
	assert.True(t, errs.IsConfig(err))
}
