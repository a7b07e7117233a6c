/*
Package capture records values a function handler writes to named output
slots during a test run.

Create a context per test, hand the function under test the slots it writes
to, and assert against the aggregated outputs afterwards:

	ctx := capture.New(capture.Config{})
	processOrder(msg, ctx.Out("result"))

	if !ctx.IsSet("result") {
		t.Fatal("handler never wrote result")
	}
	v, _ := ctx.Get("result")

A slot that was never written is reported distinctly from one written with a
falsy value: Get returns sdk.ErrOutputNotSet only for the former. Registering
the same name twice returns the same slot, and every write is recorded in
Writes for fine-grained assertions, including overwrites. Set
Config.SingleWrite to turn an overwrite into an error instead.
*/
package capture
