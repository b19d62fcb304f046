// Package spdx parses SPDX license expressions and reduces them to the
// smallest set of license requirements an accept policy allows.
//
// An expression is an immutable tree whose leaves are Requirements and whose
// inner nodes are And and Or. AND binds tighter than OR; both associate to the
// left. The package has no I/O and no global mutable state.
package spdx
