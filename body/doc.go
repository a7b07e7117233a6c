/*
Package body normalizes heterogeneous mock payloads into a canonical byte
representation.

Structured data is JSON encoded, text is UTF-8 encoded, and raw bytes pass
through unchanged, so a queue message built from a map and one built from the
equivalent JSON string carry identical bodies. Decoding is best-effort: a
body that is not JSON degrades to "no structured view" instead of failing
mock construction.
*/
package body
