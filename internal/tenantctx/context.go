package tenantctx

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// TenantContextKey is the request context key for the acting instructor ID.
type TenantContextKey struct{}

// WithInstructorID stores the instructor ID in the context.
func WithInstructorID(ctx context.Context, instructorID snowflake.ID) context.Context {
	return context.WithValue(ctx, TenantContextKey{}, instructorID)
}

// InstructorIDFromContext returns the instructor ID from context, if set.
func InstructorIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}

	value := ctx.Value(TenantContextKey{})
	if value == nil {
		return 0, false
	}
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
