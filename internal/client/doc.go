/*
Package client is a Go client for the incgamma HTTP API.

It wraps resty with retries on transport errors, 429 and 5xx responses, an
optional client-side rate limit and sonic for JSON.

	c := client.New("http://localhost:8000")
	p, err := c.Evaluate(ctx, gamma.FunctionP, 2.5, 1.0, nil)
*/
package client
