package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_NilError_EmptyValue(t *testing.T) {
	attr := Error(nil)
	require.Equal(t, KeyError, attr.Key)
	require.Equal(t, "", attr.Value.String())
}

func TestError_NonNil_UsesMessage(t *testing.T) {
	attr := Error(errors.New("boom"))
	require.Equal(t, "boom", attr.Value.String())
}

func TestHelpers_UseCanonicalKeys(t *testing.T) {
	require.Equal(t, KeyPost, Post("x").Key)
	require.Equal(t, KeyCategory, Category("x").Key)
	require.Equal(t, KeySlug, Slug("x").Key)
	require.Equal(t, KeyPath, Path("x").Key)
	require.Equal(t, KeyStage, Stage("x").Key)
	require.Equal(t, KeyCount, Count(1).Key)
	require.Equal(t, KeyDurationMS, DurationMS(1.5).Key)
}
