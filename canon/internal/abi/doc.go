// Package abi provides internal utilities for the Canonical ABI string and
// char conversions in package canon.
//
// # Contents
//
//   - helpers.go: overflow-checked arithmetic, alignment and value coercion
//
// This package is internal to canon.
package abi
