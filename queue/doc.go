/*
Package queue provides an in-memory mock for queue storage trigger messages.

Build a message from any supported payload and pass it straight to the
function under test:

	msg, err := queue.New(map[string]any{"order_id": 123}, queue.Config{})
	if err != nil {
		t.Fatal(err)
	}
	processOrder(msg)

Structured payloads are JSON encoded automatically, so handlers can read
them back through GetJSON. Scenario constructors cover common cases: use
NewPoison for a message that exhausted its retries and NewBatch for batch
processing tests.
*/
package queue
