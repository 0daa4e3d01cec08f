// Package config loads the settings that drive example generation: where the
// examples root lives, which directory holds the prototype, the placeholder
// token and the naming prefix, and the artifact and binary-file rules. Values
// come from a .mkexample.yaml file in the working directory and from
// MKEXAMPLE_* environment variables. The file is checked against an embedded
// JSON Schema before it is read.
package config
