// Copyright 2026 The CodeImpact Authors
//
// SPDX-License-Identifier: Apache-2.0

// Package cache implements spec §4.9's Cache Contract: an abstract
// persistence boundary the core talks to through three capabilities —
// solution-snapshot change detection, a get-or-compute keyed cache, and a
// clear-all reset — and nothing else. The core never assumes a particular
// storage technology and remains correct against a no-op cache; every
// implementation here is swappable behind the Contract interface.
package cache
