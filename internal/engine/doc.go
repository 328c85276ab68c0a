// Package engine contains the core scanning logic for vibewolf. It matches
// lines against a rule set, walks source trees under the built-in exclusion
// policy, and scans batches of files into ordered findings. This package is
// internal; external consumers should use the stable facade in pkg/core.
package engine
