// Package ciutil centralizes detection of CI environments and access to the
// environment variables that tests and tooling read. Keeping these lookups in
// one place means the logger, the CLI and the test fixtures agree on what
// "running in CI" means.
package ciutil
