/*
Package resilience provides the failure-handling primitives used by the
fetch pipeline: a circuit breaker for the fallback HTTP client and a
deterministic exponential backoff generator for the retry loop.

# Circuit Breaker

Three-state breaker (Closed, Open, Half-Open) with configurable trip
thresholds and state change callbacks:

	breaker := resilience.New("fallback-http", resilience.Settings{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	result, err := breaker.Execute(func() (interface{}, error) {
		return client.Call()
	})

# Backoff

The backoff schedule is a pure function of the attempt index (no jitter),
so retry timing is fully reproducible in tests:

	b := resilience.DefaultBackoff()
	b.Delay(0) // 1s
	b.Delay(1) // 2s
	b.Delay(2) // 4s

Sleeping is abstracted behind the Sleeper interface so the retry loop can
be exercised without real delays.
*/
package resilience
