package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liamcoop/erpassistant/conversation"
	"github.com/liamcoop/erpassistant/render"
	"github.com/liamcoop/erpassistant/response"
)

const (
	prompt     = "> "
	cmdQuit    = ":quit"
	cmdHistory = ":history"
)

// printer lays out replies for the terminal
type printer interface {
	Render(doc response.Document) string
	QuickReplies(replies []string) string
}

// textPrinter prints replies without styling
type textPrinter struct{}

func (textPrinter) Render(doc response.Document) string {
	return render.Text(doc)
}

func (textPrinter) QuickReplies(replies []string) string {
	numbered := make([]string, len(replies))
	for i, r := range replies {
		numbered[i] = "[" + strconv.Itoa(i+1) + "] " + r
	}
	return strings.Join(numbered, "  ")
}

// runREPL reads utterances from in until EOF, :quit or ctx is done, and
// writes each reply to out
func runREPL(ctx context.Context, session *conversation.Session, in io.Reader, out io.Writer, p printer) error {
	welcome := session.Welcome()
	printTurn(out, p, welcome)
	suggestions := welcome.QuickReplies

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case cmdQuit:
			return nil
		case cmdHistory:
			printHistory(out, session.Context())
			continue
		}

		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(suggestions) {
			line = suggestions[n-1]
			fmt.Fprintln(out, line)
		}

		turn, err := session.Submit(ctx, line)
		switch {
		case errors.Is(err, conversation.ErrEmptyUtterance):
			continue
		case err != nil && ctx.Err() != nil:
			fmt.Fprintln(out)
			return nil
		case err != nil:
			return err
		}

		printTurn(out, p, turn)
		suggestions = turn.QuickReplies
	}
}

func printTurn(out io.Writer, p printer, turn conversation.Turn) {
	fmt.Fprintln(out, p.Render(turn.Response.Document))
	if len(turn.QuickReplies) > 0 {
		fmt.Fprintln(out, p.QuickReplies(turn.QuickReplies))
	}
	fmt.Fprintln(out)
}

func printHistory(out io.Writer, cc conversation.Context) {
	if len(cc.Recent) == 0 {
		fmt.Fprintln(out, "No recent queries.")
		return
	}
	for i, q := range cc.Recent {
		fmt.Fprintf(out, "%d. %s\n", i+1, q)
	}
}
