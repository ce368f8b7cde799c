// Package memory provides in-process implementations of the store
// interfaces. State lives for the lifetime of the process and is guarded by
// a read/write mutex so it can be shared by concurrent requests.
package memory
