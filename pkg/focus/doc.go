// Package focus arbitrates connection-service focus among calls owned by
// competing connection-service providers.
//
// Only one provider may hold focus at a time, and within that provider
// exactly one call is designated the focus call. Manager serializes all
// focus-affecting events onto a single dispatch goroutine, drives providers
// to voluntarily release focus before a new provider acquires it, and
// enforces a hard timeout when a provider fails to release.
package focus
