// Package buffer provides the stereo sample and sound types that flow
// through the dynamics pipeline, a guarded allocator that reports
// allocation failure as an error, and a pool for reusable sample storage.
package buffer
