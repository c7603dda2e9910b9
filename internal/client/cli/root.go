package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.account != nil {
		s = a.account.Email + " "
	}
	if mode := a.Mode(); mode != "" {
		s = s + string(mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root runs the interactive loop: greet, start the connectivity watcher and
// hand control to the REPL. A session restored from local storage keeps the
// user logged in; otherwise commands requiring auth will prompt an error.
func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to GigLine CLI (type 'help' for commands)")

	if a.isLoggedIn() {
		log.Println("Restored saved session")
	}

	go func() {
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
