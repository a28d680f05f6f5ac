package cli

import (
	"bufio"
	"context"
	"os"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return "(guest)"
	}
	return "(" + a.user.Username + ")"
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Paperback CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
