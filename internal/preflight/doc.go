// Package preflight checks that the external tools and directories cutter
// depends on are usable before any work starts.
//
// The CLI "cutter check" command renders every result. The pipeline calls
// CheckDirectoryAccess on the output directory before taking its lock.
package preflight
