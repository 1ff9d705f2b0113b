// Package cli provides the interactive bookmarks command-line client.
//
// It wires configuration, the HTTP API client and a read-eval-print loop.
// While the REPL runs, a background watcher pings the server and reports
// switches between online and offline mode.
//
// Commands:
//   - register, login, logout
//   - me, profile
//   - list, add, show <id>, edit <id>, delete <id>
//   - export [save]
//
// App.Run blocks until the user exits or input ends.
package cli
