package instrument

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		ctx := SetCorrelationID(context.Background(), "abc-123")

		if got := GetCorrelationID(ctx); got != "abc-123" {
			t.Fatalf("got %q, want %q", got, "abc-123")
		}
	})

	t.Run("Unset", func(t *testing.T) {
		if got := GetCorrelationID(context.Background()); got != "" {
			t.Fatalf("got %q, want empty", got)
		}
	})

	t.Run("NonStringValue", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), correlationIDKey{}, 42)

		if got := GetCorrelationID(ctx); got != "[invalid_chain_id]" {
			t.Fatalf("got %q, want sentinel", got)
		}
	})
}
