// Package validation checks decoded payloads and configuration values.
//
// Struct tag validation (go-playground/validator) runs on every value the
// codec decodes, so a response shape can declare the keys it cannot do
// without:
//
//	type User struct {
//	    ID   int    `json:"id" validate:"required"`
//	    Name string `json:"name"`
//	}
//
// Programmatic validation collects field errors for configuration structs:
//
//	v := validation.New()
//	v.Required("base_url", cfg.BaseURL).OneOf("method", cfg.Method, methods)
//	if err := v.Validate(); err != nil { ... }
package validation
