package registry

// Project is a generated project under the examples root.
type Project struct {
	Name string // substitution value, e.g. "foo"
	Dir  string // directory name under the examples root, e.g. "example_foo"
}
