// Package technology holds the techno-economic parameters of generation and
// storage technologies and the cost figures derived from them.
//
// A Technology is immutable and shared: many assets may reference the same
// value. All derived costs are expressed per unit of installed capacity.
package technology
