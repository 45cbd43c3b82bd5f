package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) Root(ctx context.Context) {

	fmt.Fprintln(a.out, "Welcome to Campus Events CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "campus %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				fmt.Fprintln(a.out, "Available commands: add, list [category], search [category], stats, whoami, logout, exit")
			case a.isLoggedIn():
				fmt.Fprintln(a.out, "Available commands: list [category], search [category], whoami, logout, exit")
			default:
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI()
		case "add":
			if !a.isLoggedIn() {
				fmt.Fprintln(a.out, "Please login first")
				continue
			}
			a.AddEvent(ctx)
		case "list":
			if !a.isLoggedIn() {
				fmt.Fprintln(a.out, "Please login first")
				continue
			}
			a.List(args)
		case "search":
			if !a.isLoggedIn() {
				fmt.Fprintln(a.out, "Please login first")
				continue
			}
			a.Search(args)
		case "stats":
			if !a.isAdmin() {
				fmt.Fprintln(a.out, "Only admins can view stats")
				continue
			}
			a.Stats()
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}

}
