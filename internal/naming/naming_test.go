package naming

import (
	"strings"
	"testing"

	"github.com/sourceplane/litetopo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSubscription  = "00000000-1111-2222-3333-444444444444"
	testResourceGroup = "rg-docgen"
)

func TestBudgetFitsLongestSolutionName(t *testing.T) {
	// key vault is the tightest: 24 characters minus "kv-"
	assert.Equal(t, 21, Budget())
	assert.GreaterOrEqual(t, Budget(), 15+UniqueLength)
}

func TestUniqueTokenDeterministic(t *testing.T) {
	a := UniqueToken(testSubscription, testResourceGroup, "docgen")
	b := UniqueToken(testSubscription, testResourceGroup, "docgen")
	assert.Equal(t, a, b)
	assert.Len(t, a, UniqueLength)
	assert.Regexp(t, `^[a-z2-7]+$`, a)

	assert.NotEqual(t, a, UniqueToken(testSubscription, "rg-other", "docgen"))
	assert.Equal(t, a, UniqueToken(strings.ToUpper(testSubscription), "RG-DOCGEN", "DocGen"),
		"token is case-insensitive like ARM scopes")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"docgen", "docgen"},
		{"Doc-Gen_01", "docgen01"},
		{"  spaced name ", "spacedname"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSolutionSuffix(t *testing.T) {
	for _, name := range []string{"abc", "docgen", "abcdefghijklmno"} {
		t.Run(name, func(t *testing.T) {
			suffix, err := SolutionSuffix(testSubscription, testResourceGroup, name)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(suffix, name))
			assert.True(t, strings.HasSuffix(suffix, UniqueToken(testSubscription, testResourceGroup, name)))
			assert.LessOrEqual(t, len(suffix), Budget())
		})
	}
}

func TestDeriveAllRespectsRules(t *testing.T) {
	for _, name := range []string{"abc", "abcdefghijklmno"} {
		suffix, err := SolutionSuffix(testSubscription, testResourceGroup, name)
		require.NoError(t, err)

		names, err := DeriveAll(suffix)
		require.NoError(t, err)

		for kind, rule := range Rules {
			if !rule.Suffixed {
				assert.NotContains(t, names, kind)
				continue
			}
			derived, ok := names[kind]
			require.True(t, ok, "missing name for %s", kind)
			assert.LessOrEqual(t, len(derived), rule.MaxLength, "%s: %s", kind, derived)
			assert.GreaterOrEqual(t, len(derived), rule.MinLength, "%s: %s", kind, derived)
			assert.True(t, strings.HasPrefix(derived, rule.Prefix))
			assert.NoError(t, Check(kind, derived))
		}
	}
}

func TestDeriveStorageName(t *testing.T) {
	name, err := Derive(model.KindStorageAccount, "docgenab2cd")
	require.NoError(t, err)
	assert.Equal(t, "stdocgenab2cd", name)
}

func TestDeriveRejectsUnsuffixedKind(t *testing.T) {
	_, err := Derive(model.KindBlobContainer, "docgen")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		kind    model.ResourceKind
		value   string
		wantErr bool
	}{
		{"vault at limit", model.KindKeyVault, "kv-" + strings.Repeat("a", 21), false},
		{"vault over limit", model.KindKeyVault, "kv-" + strings.Repeat("a", 22), true},
		{"storage with hyphen", model.KindStorageAccount, "st-docgen", true},
		{"storage upper case", model.KindStorageAccount, "stDocgen", true},
		{"blob container too short", model.KindBlobContainer, "ab", true},
		{"blob container", model.KindBlobContainer, "product-images", false},
		{"unknown kind", model.ResourceKind("Unknown"), "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.kind, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNameDerivationOverflow)
				return
			}
			assert.NoError(t, err)
		})
	}
}
