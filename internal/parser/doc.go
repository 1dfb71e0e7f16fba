// Package parser reads version values out of Cargo manifests and lock files
// and splices replacement values into raw file contents without disturbing
// any other byte.
package parser
