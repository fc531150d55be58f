// Package fileutil holds small file and directory copy helpers.
package fileutil
