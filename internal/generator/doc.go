// Package generator renders the nginx output directory from a Config.
//
// A run is a linear batch:
//
//  1. parse DOMAINS and WILDCARD_LOCALHOST_PORTS and choose a template per
//     domain (Plan)
//  2. remove every generated .conf file except the two wildcard files
//  3. write or remove the wildcard pair 00-wildcard_map.conf and
//     wildcard.localhost.conf
//  4. render one <domain>.conf per domain
//
// Only a failure to list the output directory stops the run. Missing
// templates, missing certificates and per-file I/O errors are logged,
// recorded in the Report, and the remaining entries are still processed.
//
// The generator assumes it owns the output directory for the duration of a
// run. Two concurrent runs against the same directory can race.
package generator
