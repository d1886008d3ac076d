// Package cli implements the shiftmate command line tool.
//
// Commands share the global -c (config file), -u (API URL) and -t (token storage)
// options; credentials obtained by login persist in the token storage so later
// invocations reuse and refresh them. Results are printed as indented JSON.
package cli
