package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID returns a child context carrying the correlation ID.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored in ctx.
//
// It returns an empty string when no ID was set, and a sentinel value when the
// stored value is not a string so log handlers can skip it.
func GetCorrelationID(ctx context.Context) string {
	v := ctx.Value(correlationIDKey{})
	if v == nil {
		return ""
	}

	cID, ok := v.(string)
	if !ok {
		return "[invalid_chain_id]"
	}

	return cID
}
