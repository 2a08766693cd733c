// Package load collects Java sources and turns them into resolved units.
//
// Inputs are resolved through github.com/viant/afs, so a path may be a local
// file or directory or any URL afs has a storage driver for:
//
//	Input               Sources
//	dir/                every *.java file below dir (recursively)
//	File.java           the file itself
//	bundle.txtar        every *.java member of the archive
//
// Units are parsed concurrently. A unit with syntax errors is still returned;
// the detectors work on whatever the parser recovered, and the loader logs a
// warning for it.
package load
