// Package intakesdk is a Go client for the client intake service, and the
// home of the JSON types the service puts on the wire.
//
// Public submissions need no credentials:
//
//	c := intakesdk.NewSDKClient("http://localhost:8080")
//	rec, err := c.SubmitClient(ctx, intakesdk.SubmitClientRequest{
//		FullName:    "Jo Smith",
//		Email:       "jo@example.com",
//		PhoneNumber: "555-123-4567",
//	})
//
// Admin operations go through a Session obtained from Login:
//
//	s, err := c.Login(ctx, "admin", "admin123")
//	stats, err := s.Stats(ctx)
//
// Non-2xx replies are returned as *APIError carrying the status code and the
// server's message.
package intakesdk
