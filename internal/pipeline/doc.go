// Package pipeline provides a framework for executing enrichment steps
// in sequence.
//
// The pipeline pattern is used to process website URLs through multiple
// stages: validation, normalization, page fetching, signal detection,
// and persistence. Each stage is implemented as a Step that receives the
// current report and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running batches
//
// The pipeline is fail-fast: the first step error marks the report failed
// and stops the run, because later stages depend on earlier output (there
// is nothing to detect when the fetch failed). Batch processing with
// concurrency control is handled by BatchProcessor using errgroup.
package pipeline
