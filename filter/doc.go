// Package filter selects time entries with expr-lang expressions.
//
// Expressions see one entry at a time through variables such as Description,
// Project, Client, Workspace, Tags, Billable, Running, Start, Stop, Seconds and
// Hours, plus helpers like hasTag, longerThan, daysAgo and parseDate:
//
//	hasTag("meeting") and Hours > 1 and Start > parseDate("last monday")
//
// A shorthand form is expanded before compilation. Values are quoted, or a
// single bare word:
//
//	tag:"meeting" AND project!:"Internal" AND longer:"30m"
//	project:Website and billable:true
package filter
