//-------------------------------------------------------------------------
//
// pgEdge MerchLens
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package reports

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownReport is returned by Get for unregistered names.
var ErrUnknownReport = errors.New("unknown report")

var (
	registry = make(map[string]Report)
	mu       sync.RWMutex
)

// Register adds a report to the registry, replacing any report of the same
// name.
func Register(r Report) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Name()] = r
}

// Get retrieves a report by name.
func Get(name string) (Report, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, name)
	}
	return r, nil
}

// List returns all registered report names in sorted order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered reports sorted by name.
func All() []Report {
	names := List()

	mu.RLock()
	defer mu.RUnlock()
	out := make([]Report, 0, len(names))
	for _, name := range names {
		out = append(out, registry[name])
	}
	return out
}
