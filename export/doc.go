// Package export writes attendance records and payroll estimates as xlsx workbooks.
package export
