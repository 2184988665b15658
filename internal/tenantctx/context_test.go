package tenantctx

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func TestInstructorIDRoundTrip(t *testing.T) {
	ctx := WithInstructorID(context.Background(), snowflake.ID(1001))

	id, ok := InstructorIDFromContext(ctx)
	assert.True(t, ok)
	assert.EqualValues(t, 1001, id)
}

func TestInstructorIDMissing(t *testing.T) {
	_, ok := InstructorIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = InstructorIDFromContext(nil)
	assert.False(t, ok)
}

func TestInstructorIDAlternateTypes(t *testing.T) {
	base := context.Background()

	id, ok := InstructorIDFromContext(context.WithValue(base, TenantContextKey{}, int64(7)))
	assert.True(t, ok)
	assert.EqualValues(t, 7, id)

	id, ok = InstructorIDFromContext(context.WithValue(base, TenantContextKey{}, "42"))
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)

	_, ok = InstructorIDFromContext(context.WithValue(base, TenantContextKey{}, "not-a-number"))
	assert.False(t, ok)
}
