/*
Package apisdk provides a client SDK for the MOCShare content sharing service.

# Overview

The service exposes two dispatcher endpoints, POST /api/user and POST /api/moc.
Every request is a single JSON object whose "endpoint" field selects the
operation; every response is an HTTP 200 envelope of the form

	{"result": ..., "error": ...}

with exactly one field non-null. The SDK hides the envelope: operations return
their result value, and a non-null envelope error surfaces as an *APIError.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations, and Login to create a Session
  - Session: authenticated operations, carrying the session cookie

Create an SDKClient for public operations and to log in:

	client := apisdk.NewSDKClient("https://www.mocshare.com")

	// Register and activate an account
	msg, err := client.Register(ctx, "builder", "builder@example.com", pw, pw)
	msg, err = client.VerifyRegistration(ctx, code)

	// Authenticate
	session, err := client.Login(ctx, "builder@example.com", pw)

A Session holds the opaque session cookie in its own cookie jar and attaches it
to every request:

	link, err := session.CreateMoc(ctx, apisdk.MocFields{
		Title: "Castle", Text: "A big castle", Thumb: "castle.jpg", Filter: "none",
	})

	err = session.Logout(ctx)

# Error Handling

Domain failures (wrong password, missing fields, ownership violations) arrive
as *APIError carrying the server's message verbatim:

	_, err := client.Login(ctx, email, password)
	var apiErr *apisdk.APIError
	if errors.As(err, &apiErr) {
		fmt.Println("rejected:", apiErr.Message)
	}

Transport failures and rate limiting (ErrRateLimited) are returned as ordinary
errors.
*/
package apisdk
