// Package api provides the file description service.
//
// # Architecture
//
//   - client.go: Describer interface and factory function (NewDescriber)
//   - chat.go: OpenAI-compatible chat completions client (ChatClient)
//   - offline.go: deterministic describer used without an endpoint
//   - retry.go: exponential backoff retry logic for transient HTTP failures
//
// # Usage
//
//	cfg := config.NewConfig()
//	if err := cfg.Validate(); err != nil {
//	    // handle error
//	}
//	describer, err := api.NewDescriber(cfg)
//	if err != nil {
//	    // handle error
//	}
//	text, err := describer.Describe(ctx, "notes.md", content)
//
// Errors from the chat endpoint are returned as *APIError carrying the HTTP
// status. Requests answered with 429, 500, 502, 503 or 504 are retried.
package api
