// Package toggl provides typed, resilience-wrapped operations against
// the Toggl Track v9 API: time entries, the running timer, tasks,
// projects, workspaces, and client records.
//
// Every operation runs through the shared pacing gate and retry policy,
// parses the response into a validated domain value, and reports
// failures as classified transport errors. Partial updates send only
// the fields the caller explicitly set; everything else is preserved
// upstream untouched.
package toggl
