// Package network answers whether the device has a usable network connection.
//
// Connectivity is queried through the Context and ConnectivityManager interfaces,
// so platforms with their own connectivity service can plug it in. SystemContext
// implements them on top of the host's network interfaces.
package network
