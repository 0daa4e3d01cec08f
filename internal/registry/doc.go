// Package registry finds generated projects. There is no index file: a
// project is any directory directly under the examples root whose name
// starts with the configured prefix, except the prototype directory itself.
// The set is read from disk on every call.
package registry
