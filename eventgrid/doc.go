/*
Package eventgrid provides an in-memory mock for event grid trigger events.

Events carry a structured data object rather than a byte body, so GetJSON
returns the data map directly. NewBlobCreated and NewBlobDeleted build
storage events pre-populated with realistic blob metadata (url, api, etag,
sequencer, request identifiers); NewCustom covers application-defined
events.

	ev, err := eventgrid.NewBlobCreated("", "", "invoice.pdf", eventgrid.Config{})
	if err != nil {
		t.Fatal(err)
	}
	onBlobCreated(ev)
*/
package eventgrid
