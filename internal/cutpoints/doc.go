// Package cutpoints turns transcript segments into split timestamps.
//
// A segment contributes its end time when its text contains the configured
// keyword as a whole word. Matching is case-insensitive using Unicode case
// folding, so "CUT." matches while "scuttle" does not.
package cutpoints
