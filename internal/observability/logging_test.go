package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithBuildID_RoundTrip(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-42")
	lc := GetContext(ctx)
	require.Equal(t, "build-42", lc.BuildID)
	require.Empty(t, lc.Stage)
}

func TestWithStage_PreservesBuildID(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-42")
	ctx = WithStage(ctx, "discover")

	lc := GetContext(ctx)
	require.Equal(t, "build-42", lc.BuildID)
	require.Equal(t, "discover", lc.Stage)
}

func TestGetContext_EmptyByDefault(t *testing.T) {
	lc := GetContext(context.Background())
	require.Empty(t, lc.BuildID)
	require.Empty(t, lc.Stage)
}

func TestNewBuildID_Unique(t *testing.T) {
	a := NewBuildID()
	b := NewBuildID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
