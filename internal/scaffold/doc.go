// Package scaffold implements the operations behind the mkexample command:
// Create materializes one project from the prototype tree, Update re-applies
// the current prototype to every generated project, and Clean strips
// build-system artifacts from every generated project. Create and Update
// only ever add files; an existing file is never rewritten.
package scaffold
