package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_NoGroups(t *testing.T) {
	got, err := Expand("super + w")
	require.NoError(t, err)
	assert.Equal(t, []string{"super + w"}, got)
}

func TestExpand_SimpleGroup(t *testing.T) {
	got, err := Expand("bspc node -f {next.local,prev.local}")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"bspc node -f next.local",
		"bspc node -f prev.local",
	}, got)
}

func TestExpand_CartesianProductOrder(t *testing.T) {
	// Leftmost group varies slowest.
	got, err := Expand("{a,b}{1,2}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "b1", "b2"}, got)
}

func TestExpand_NestedGroups(t *testing.T) {
	got, err := Expand("{a,x{1,2}}!")
	require.NoError(t, err)
	assert.Equal(t, []string{"a!", "x1!", "x2!"}, got)
}

func TestExpand_AlphaRange(t *testing.T) {
	fromRange, err := Expand("{a-e}")
	require.NoError(t, err)
	explicit, err := Expand("{a,b,c,d,e}")
	require.NoError(t, err)
	assert.Equal(t, explicit, fromRange)
}

func TestExpand_DescendingNumericRange(t *testing.T) {
	fromRange, err := Expand("{5-1}")
	require.NoError(t, err)
	explicit, err := Expand("{5,4,3,2,1}")
	require.NoError(t, err)
	assert.Equal(t, explicit, fromRange)
}

func TestExpand_RangeAmongAlternatives(t *testing.T) {
	got, err := Expand("super + {1-3,0}")
	require.NoError(t, err)
	assert.Equal(t, []string{"super + 1", "super + 2", "super + 3", "super + 0"}, got)
}

func TestExpand_MixedEndpointsAreLiteral(t *testing.T) {
	got, err := Expand("{a-3}")
	require.NoError(t, err)
	assert.Equal(t, []string{"a-3"}, got)
}

func TestExpand_ElisionExpandsToEmpty(t *testing.T) {
	got, err := Expand("super + {_,shift + }w")
	require.NoError(t, err)
	assert.Equal(t, []string{"super + w", "super + shift + w"}, got)
}

func TestExpand_EmptyAlternative(t *testing.T) {
	got, err := Expand("x{a,}y")
	require.NoError(t, err)
	assert.Equal(t, []string{"xay", "xy"}, got)
}

func TestExpand_EscapedComma(t *testing.T) {
	got, err := Expand(`super + {\,, .}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"super + ,", "super +  ."}, got)
}

func TestExpand_EscapedBraceIsLiteral(t *testing.T) {
	got, err := Expand(`echo \{literal\}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo {literal}"}, got)
}

func TestExpand_EscapedDashBlocksRange(t *testing.T) {
	got, err := Expand(`{a\-c,x}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a-c", "x"}, got)
}

func TestExpand_ShellBackslashPreserved(t *testing.T) {
	got, err := Expand(`echo "a\nb"`)
	require.NoError(t, err)
	assert.Equal(t, []string{`echo "a\nb"`}, got)
}

func TestExpand_Unterminated(t *testing.T) {
	_, err := Expand("super + {a,b")
	assert.ErrorIs(t, err, ErrUnterminatedGroup)
}

func TestExpand_UnterminatedNested(t *testing.T) {
	_, err := Expand("{a,{b}")
	assert.ErrorIs(t, err, ErrUnterminatedGroup)
}

func TestDesugarRange(t *testing.T) {
	assert.Equal(t, []string{"h", "i", "j", "k", "l"}, desugarRange("h-l"))
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, desugarRange("5-1"))
	assert.Equal(t, []string{""}, desugarRange("_"))
	assert.Equal(t, []string{"ab"}, desugarRange("ab"))
	assert.Equal(t, []string{"A-b"}, desugarRange("A-b"))
}
