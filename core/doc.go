// Package core holds the ambient runtime shared by the webhook packages:
// configuration, the error envelope, logger and metrics contracts, and
// per-operation observability. It must not depend on the decoder, transport
// or storage packages.
package core
