// Package testsupport builds on-disk series workspaces and settings for tests.
package testsupport
