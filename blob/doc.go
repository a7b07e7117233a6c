/*
Package blob provides an in-memory mock for blob storage input streams.

The mock is an io.Reader over the blob content, so handlers that stream
their input work unchanged:

	b, err := blob.New("Hello, World!", blob.Config{Name: "greeting.txt"})
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(b)
*/
package blob
