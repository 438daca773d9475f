// Package ikctl implements the ikctl diagnostic command line: schema
// migration, account creation, interview inspection and a scripted
// walkthrough of the whole storage flow.
//
// Commands talk to the database directly through the same services the
// server uses. No server needs to be running.
package ikctl
