package network

// Query exposes query to the external test package.
var Query = query
