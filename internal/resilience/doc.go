// Package resilience groups the fault tolerance helpers of the service:
// circuit breakers around the durable store and the query hint providers,
// and retry with exponential backoff and jitter.
//
//	cb := circuitbreaker.New(circuitbreaker.StoreWriteConfig())
//	err := cb.Do(func() error {
//	    return repo.WriteCourses(ctx, courses)
//	})
//
//	err = retry.WithBackoff(ctx, retry.StoreReadConfig(), func() error {
//	    snap, err = repo.ReadAll(ctx)
//	    return err
//	})
package resilience
