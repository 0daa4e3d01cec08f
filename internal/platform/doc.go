// Package platform smooths over operating-system differences in the
// filesystem: which permission bits a generated file or directory gets, and
// how symbolic links are recognised and read through a go-billy filesystem.
package platform
