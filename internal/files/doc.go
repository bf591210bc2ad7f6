// Package files finds and checks the input files of a transformation run.
// A command-line argument may name a file or a directory; directories
// contribute every CSV and XLSX file they directly contain.
package files
