// Package resilience holds fault tolerance primitives for outbound calls:
// circuit breakers for the AI providers and retry with exponential backoff
// and jitter for transient failures.
//
// Typical usage:
//
//	cb := circuitbreaker.NewCircuitBreaker("claude", circuitbreaker.DefaultConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callProvider()
//	})
//
//	err := retry.WithBackoff(ctx, retry.DefaultConfig(), func() error {
//	    return performOperation()
//	})
package resilience
