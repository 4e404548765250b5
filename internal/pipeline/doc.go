// Package pipeline runs the schoolscan workflow as a sequence of steps.
//
// A run loads one or more files, optionally transfers a filtered subset,
// optionally fetches assessment details from a webpage and finally produces
// the summary report. Each stage is a Step that receives the shared
// RunReport and records what it did.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows the run command to add or skip stages without branching
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context between steps
package pipeline
