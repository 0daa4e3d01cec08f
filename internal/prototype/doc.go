// Package prototype turns a prototype directory tree into a project tree.
//
// It has three layers. Substitutor replaces the placeholder token with a
// project name in path segments and file contents. Walk and Collect traverse
// a tree depth-first and describe each entry as a Node without ever
// following symlinks. Materializer creates one destination file or directory
// at a time and never overwrites a file that is already there.
//
// All filesystem access goes through go-billy, so the same code runs against
// the real disk (osfs) and an in-memory tree (memfs).
package prototype
