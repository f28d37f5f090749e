package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, Fields(ctx))

	ctx = WithRID(ctx, "req-1")
	ctx = WithUID(ctx, "user-1")
	assert.Equal(t, "req-1", RID(ctx))
	assert.Equal(t, "user-1", UID(ctx))
	assert.Len(t, Fields(ctx), 2)
}
