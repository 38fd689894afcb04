// Package member selects instructions that depend on a value's type category:
// method returns and local variable loads and stores.
//
// Dispatch is over the closed category.Category enumeration. Every category maps
// to exactly one precomputed variant; the mapping is a total function.
package member
