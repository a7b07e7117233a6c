/*
Package builder is the generic construction core behind every trigger mock.

A trigger kind contributes a Definition: a defaults table and an assembly
function. The handle merges caller overrides over the defaults, fails fast
when a required field is absent, and assembles the final instance lazily on
first use, caching it for the handle's lifetime. Metadata reads go through
Field without paying the assembly cost.

Construction is pure and in-memory; a handle is owned by one test and must
not be shared across concurrent test executions.
*/
package builder
