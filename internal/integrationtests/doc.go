// Package integrationtests runs the whole application against script files
// written to a temporary directory.
package integrationtests
