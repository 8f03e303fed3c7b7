// Package domain contains the core entities of the cluster mass analysis.
// These types represent the astrophysical concepts (galaxy records, member
// samples, derived statistics) and are intentionally free of I/O and
// configuration concerns so they can be shared across packages.
package domain
