// Package cache provides byte-budgeted LRU caches.
//
// An LRU keeps its recency order in a list and finds entries through a hash
// map from key to list position. A hit moves the entry to the front by
// splicing its node, without copying the value. Sharded spreads keys over
// independent LRUs to cut lock contention.
//
// Value bytes, list nodes and hash buckets can all be charged to a shared
// resource.Controller. A Set the controller rejects is simply not cached.
package cache
