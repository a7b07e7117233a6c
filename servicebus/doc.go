/*
Package servicebus provides an in-memory mock for service bus trigger
messages.

The full message property surface is available through Config, with
scenario constructors for the common shapes: NewDeadLettered for a message
that exhausted its delivery attempts, NewSessionMessage for session-aware
entities, NewScheduled for future delivery, and NewRequestReply for
request/reply routing with a generated correlation identifier.

	msg, err := servicebus.NewDeadLettered("failed payload", servicebus.Config{})
	if err != nil {
		t.Fatal(err)
	}
	handleDeadLetter(msg)
*/
package servicebus
