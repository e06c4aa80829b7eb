// Package auth turns stored credentials into request authentication.
//
// A Payload is an immutable snapshot of the credential fields and headers of a
// client. The Authorizer applies a payload to an outgoing request as Basic
// credentials, a static Bearer token, or an OAuth2 access token obtained through
// the password or client_credentials grant.
package auth
