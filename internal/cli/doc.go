// Package cli defines the Cobra command tree for the mkexample CLI. The root
// command keeps the classic invocation (mkexample <name>..., --update,
// --clean); each other file registers one subcommand. Commands only parse
// flags and format output; the work happens in internal/scaffold.
package cli
