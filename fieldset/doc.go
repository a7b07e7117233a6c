/*
Package fieldset provides the merged field table that drives mock
construction.

A trigger's static defaults, computed defaults, and caller overrides are
merged in increasing precedence, so caller-supplied values always win. Typed
getters convert stored values for assembly functions and report wrong-typed
overrides with errors naming the field.
*/
package fieldset
