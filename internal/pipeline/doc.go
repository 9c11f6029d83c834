// Package pipeline composes the three OCR stages (preprocess, recognize,
// clean) into the single entry point external collaborators call.
//
// Data flows strictly preprocessor -> recognizer -> normalizer; each stage
// consumes only the previous stage's output plus its configuration. One
// image through the full pipeline is the unit of concurrency: invocations
// share no mutable state, so RunBatch fans them out across a bounded worker
// pool without synchronization inside the stages.
//
// Stage errors propagate with their identity intact: the pipeline never
// catches and reinterprets them. Callers decide retry-vs-abort per kind:
// ocr.ErrEngineUnavailable may be retried after a delay; an invalid image
// never should be. No stage defines its own timeout; all stages are
// stateless, so a host abandoning a deadline-wrapped call leaves nothing
// corrupted.
package pipeline
