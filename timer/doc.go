/*
Package timer provides an in-memory mock for timer trigger requests.

	t1, err := timer.New(timer.Config{})        // on schedule
	t2, err := timer.NewPastDue(timer.Config{}) // delayed execution
*/
package timer
