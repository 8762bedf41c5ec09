// Package shell implements the interactive virtsh prompt.
//
// A Shell owns at most one hypervisor Session, opened through a Dialer so
// tests can substitute a fake. Each input line is parsed into a Command and
// dispatched to the matching handler in internal/vm; results go to the
// shell's output writer and handler errors are printed without ending the
// session. After every successful connect the completion tree is rebuilt
// from the domains the new session holds.
package shell
