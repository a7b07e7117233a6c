/*
Package http provides an in-memory mock for http trigger requests.

Map payloads are JSON encoded and tagged application/json automatically, so
the common POST-a-JSON-document case is one line:

	req, err := http.New(map[string]any{"name": "Alice"}, http.Config{Method: "POST"})
	if err != nil {
		t.Fatal(err)
	}
	resp := handleUser(req)

Form-encoded bodies are available through Form, query and route parameters
through Params and RouteParams.
*/
package http
