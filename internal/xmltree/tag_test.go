package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"h2resconv/internal/errors"
)

func TestBuildTag(t *testing.T) {
	tests := []struct {
		name    string
		parts   []string
		policy  TagPolicy
		want    string
		wantErr bool
	}{
		{
			name:   "bus lowercased with underscores",
			parts:  []string{"AL1 0"},
			policy: TagPolicy{Case: CaseLower},
			want:   "al1_0",
		},
		{
			name:   "node uppercased with spaces stripped",
			parts:  []string{"de0 1"},
			policy: TagPolicy{Case: CaseUpper, StripSpaces: true},
			want:   "DE01",
		},
		{
			name:   "bus and technology composite",
			parts:  []string{"AL1 0", "profile_offwind-ac"},
			policy: TagPolicy{Case: CaseKeep},
			want:   "AL1_0_profile_offwind-ac",
		},
		{
			name:   "tabs count as whitespace",
			parts:  []string{"a\tb"},
			policy: TagPolicy{Case: CaseKeep},
			want:   "a_b",
		},
		{
			name:   "multiple spaces keep their width",
			parts:  []string{"a  b"},
			policy: TagPolicy{Case: CaseKeep},
			want:   "a__b",
		},
		{
			name:    "leading digit is rejected",
			parts:   []string{"2onwind"},
			policy:  TagPolicy{Case: CaseKeep},
			wantErr: true,
		},
		{
			name:    "empty name is rejected",
			parts:   []string{""},
			policy:  TagPolicy{Case: CaseKeep, StripSpaces: true},
			wantErr: true,
		},
		{
			name:    "disallowed character is not silently dropped",
			parts:   []string{"a<b"},
			policy:  TagPolicy{Case: CaseKeep},
			wantErr: true,
		},
		{
			name:   "dots and hyphens are legal interior characters",
			parts:  []string{"solar-hsat.v2"},
			policy: TagPolicy{Case: CaseKeep},
			want:   "solar-hsat.v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildTag(tt.parts, tt.policy)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, errors.ErrTypeValidation, errors.TypeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildTag_Deterministic(t *testing.T) {
	parts := []string{"AL1 0", "profile_onwind"}
	policy := TagPolicy{Case: CaseKeep}

	first, err := BuildTag(parts, policy)
	require.NoError(t, err)
	second, err := BuildTag(parts, policy)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
