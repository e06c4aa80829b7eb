// Package rest is the client-side configurator for REST calls.
//
// A Client holds the credentials, headers, and timeouts of one API consumer.
// All clients share the transport client owned by a TransportProvider, so they
// share one connection pool and one dispatcher. Through it a Client can cancel
// every call or only the calls with a given tag. It also builds auth payloads
// from its credentials, and creates, authorizes, and dispatches requests.
package rest
