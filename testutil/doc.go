// Package testutil extends the component lifecycle with test-only
// behaviour: Reset between cases, and Snapshot/Restore around a case that
// mutates shared state.
//
//	func TestCreateUser(t *testing.T) {
//	    transport := httpclienttest.NewTransport()
//	    testutil.T(t).Setup(transport)
//	    // transport is stopped when the test ends
//	}
package testutil
