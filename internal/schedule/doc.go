// Package schedule reads and writes the timetable file: a delimited table
// whose first row holds column headers and whose first column holds time
// slot labels. Writes replace a single cell by rewriting the whole file.
package schedule
