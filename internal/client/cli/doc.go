// Package cli provides the interactive Tempero command-line client.
//
// It wires configuration, the local session database, the REST client and
// the services, then runs a REPL. A session saved by a previous run is
// restored at start and the feed is shown right away.
//
// Commands:
//   - register / login / logout / whoami
//   - list (l), post, edit <id>, delete <id>
//   - ping, help, exit (quit)
//
// Field errors are printed one per line under the form; every other error
// is printed as a single message. No error ends the REPL.
package cli
