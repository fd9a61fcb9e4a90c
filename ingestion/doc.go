// Package ingestion dispatches commit records into the index with bounded
// concurrency.
//
// The Loader pulls records from a source, derives the approvals-by-type
// summary, and submits one index write per record to a fixed-size worker
// pool. A weighted semaphore sized at twice the pool keeps the source from
// being drained faster than the pool completes work, so memory stays flat
// even for very large exports. Failures of individual writes are logged and
// counted but never abort the batch.
package ingestion
