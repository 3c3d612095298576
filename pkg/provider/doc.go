// Package provider implements concrete signal sources for the rubric
// engine: a local sqlite store, a shared postgres store, and a static
// JSON dataset file. All of them serve normalized [0,1] scores and share
// the dataset exchange format.
package provider
