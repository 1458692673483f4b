// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"os"
	"sync"
)

// typeCatalog is the per-file compute-or-get cache backing both compiler
// flavors (spec §4.3: "all caches are safe for concurrent readers and
// inserts... compute is idempotent", so a plain sync.Map with no
// singleflight guard is sufficient).
type typeCatalog struct {
	files sync.Map // file path -> []*TypeSymbol
	index sync.Map // type simple/qualified name -> *TypeSymbol (last writer wins)
}

func newTypeCatalog() *typeCatalog {
	return &typeCatalog{}
}

// ScanFile computes (or returns the cached) type table for path.
func (c *typeCatalog) ScanFile(path string) ([]*TypeSymbol, error) {
	if cached, ok := c.files.Load(path); ok {
		return cached.([]*TypeSymbol), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	masked := maskCommentsAndStrings(content)
	types := scanTypes(path, string(masked), func(offset int) int { return lineOfOffset(content, offset) })

	// Idempotent compute: benign if two goroutines race here, both produce
	// the same result, LoadOrStore keeps whichever landed first.
	actual, _ := c.files.LoadOrStore(path, types)
	stored := actual.([]*TypeSymbol)
	for _, t := range stored {
		c.index.Store(t.QualifiedName(), t)
		c.index.LoadOrStore(t.Name, t)
	}
	return stored, nil
}

func (c *typeCatalog) typeByName(name string) *TypeSymbol {
	if v, ok := c.index.Load(name); ok {
		return v.(*TypeSymbol)
	}
	return nil
}

func (c *typeCatalog) allTypes() []*TypeSymbol {
	var out []*TypeSymbol
	c.files.Range(func(_, v any) bool {
		out = append(out, v.([]*TypeSymbol)...)
		return true
	})
	return out
}

func (c *typeCatalog) clear() {
	c.files = sync.Map{}
	c.index = sync.Map{}
}
