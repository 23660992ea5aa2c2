// Package httpclient is a typed JSON HTTP client. A Request describes a
// call, a Transport sends it, and Classify turns the raw outcome into either
// a Response[S] carrying the decoded success payload or an *Error[F]
// carrying the decoded error payload or the reason decoding failed.
//
// # Basic Usage
//
//	type Comment struct {
//	    Name     string `json:"name"`
//	    LastName string `json:"lastName"`
//	}
//	type APIError struct {
//	    Message string `json:"message" validate:"required"`
//	}
//	func (e APIError) Error() string { return e.Message }
//
//	client := httpclient.NewClient[Comment, APIError]()
//	resp, err := client.Do(ctx, httpclient.NewBodyRequest(
//	    "https://api.example.com/comments",
//	    Comment{Name: "Josue", LastName: "Hernandez"},
//	    httpclient.WithMethod(httpclient.MethodPost),
//	))
//	if apiErr, ok := httpclient.AsInvalidRequest[APIError](err); ok {
//	    // the server rejected the call with a decodable body
//	}
//
// # Key Casing
//
// Bodies are encoded and decoded through a casing.Policy. By default keys
// are written as snake_case and read back into camelCase, so the body above
// is sent as {"name":"Josue","last_name":"Hernandez"}. WithPolicy captures
// a policy per client; without it each call resolves casing.Global().
//
// # Transports
//
// Default() is a shared Adapter over net/http. Adapters are built from
// AdapterConfig and carry TLS, HTTP/2, default headers, a User-Agent and
// trace propagation. Any provider.RequestResponse[TransportRequest,
// *TransportResponse] can stand in, and provider middleware composes
// around it.
package httpclient
