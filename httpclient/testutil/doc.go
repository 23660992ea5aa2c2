// Package testutil provides test doubles for httpclient: a recording
// Transport with programmable outcomes and a gin-backed fake API server for
// end-to-end adapter tests. Both implement testutil.TestComponent.
//
//	tr := testutil.NewTransport().Respond(200, []byte(`{"id":1}`), nil)
//	client := httpclient.NewClient[Item, APIError](httpclient.WithTransport(tr))
//	_, _ = client.Do(ctx, httpclient.NewRequest("https://api.example.com/items/1"))
//	req, _ := tr.LastRequest()
package testutil
