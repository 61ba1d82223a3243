package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		wantSize int
		wantErr  error
	}{
		{
			name:     "pocket aces",
			notation: "AA",
			wantSize: 6,
		},
		{
			name:     "ace king suited",
			notation: "AKs",
			wantSize: 4,
		},
		{
			name:     "ace king offsuit",
			notation: "AKo",
			wantSize: 12,
		},
		{
			name:     "ace king any",
			notation: "AK",
			wantSize: 16,
		},
		{
			name:     "multiple hands",
			notation: "AA,KK,AKs",
			wantSize: 16,
		},
		{
			name:     "pocket pairs plus",
			notation: "TT+",
			wantSize: 30, // TT,JJ,QQ,KK,AA = 5 * 6
		},
		{
			name:     "suited plus",
			notation: "ATs+",
			wantSize: 16, // ATs..AKs = 4 * 4
		},
		{
			name:     "offsuit plus",
			notation: "KJo+",
			wantSize: 24, // KJo,KQo = 2 * 12
		},
		{
			name:     "any-suit plus",
			notation: "AQ+",
			wantSize: 32, // AQ,AK = 2 * 16
		},
		{
			name:     "dash range pairs",
			notation: "22-55",
			wantSize: 24,
		},
		{
			name:     "dash range suited",
			notation: "A5s-A2s",
			wantSize: 16,
		},
		{
			name:     "overlapping tokens deduplicate",
			notation: "QQ+,KK+",
			wantSize: 18, // QQ,KK,AA
		},
		{
			name:     "whitespace and empty parts",
			notation: " TT+ ,, KQs ",
			wantSize: 34,
		},
		{
			name:     "unknown rank",
			notation: "XX",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad modifier",
			notation: "AKx",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "plus on pair with modifier",
			notation: "TTs+",
			wantErr:  ErrInvalidRangeToken,
		},
		{
			name:     "plus with bad rank",
			notation: "X5+",
			wantErr:  ErrInvalidRangeToken,
		},
		{
			name:     "lone plus",
			notation: "+",
			wantErr:  ErrInvalidRangeToken,
		},
		{
			name:     "mismatched dash range",
			notation: "A5s-K2s",
			wantErr:  ErrInvalidRangeToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRange(tt.notation)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, r.Size())
		})
	}
}

func TestRangePlusExpansionIsMonotone(t *testing.T) {
	// A higher-ranked plus token must expand to a subset of a lower one.
	wide, err := ParseRange("TT+")
	require.NoError(t, err)
	narrow, err := ParseRange("QQ+")
	require.NoError(t, err)

	require.Greater(t, wide.Size(), narrow.Size())
	for _, h := range narrow.Hands() {
		assert.True(t, wide.Contains(h), "QQ+ hand %s missing from TT+", h)
	}
}

func TestRangeContains(t *testing.T) {
	r, err := ParseRange("TT+,ATs+")
	require.NoError(t, err)

	aces, err := ParseHoleCards("AsAh")
	require.NoError(t, err)
	assert.True(t, r.Contains(aces))

	ajs, err := ParseHoleCards("AdJd")
	require.NoError(t, err)
	assert.True(t, r.Contains(ajs))

	ajo, err := ParseHoleCards("AdJc")
	require.NoError(t, err)
	assert.False(t, r.Contains(ajo))

	assert.True(t, r.ContainsClass(Class{High: Queen, Low: Queen}))
	assert.False(t, r.ContainsClass(Class{High: Nine, Low: Nine}))
}

func TestRangeClasses(t *testing.T) {
	classes, err := ParseClasses("TT+")
	require.NoError(t, err)
	require.Len(t, classes, 5)
	assert.Equal(t, "AA", classes[0].String())
	assert.Equal(t, "TT", classes[4].String())
}

func TestRangePercentage(t *testing.T) {
	r, err := ParseRange("AA")
	require.NoError(t, err)
	assert.InDelta(t, 6.0/1326.0*100.0, r.Percentage(), 1e-9)
}
