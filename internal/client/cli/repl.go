package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	EditUser(ctx context.Context, args []string) error

	Videos(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Categories(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Watch(ctx context.Context, args []string) error

	Users(ctx context.Context) error
	AddUser(ctx context.Context) error
	DeleteUser(ctx context.Context, args []string) error
	AllVideos(ctx context.Context) error
	AddVideo(ctx context.Context) error
	EditVideo(ctx context.Context, args []string) error
	DeleteVideo(ctx context.Context, args []string) error
	AllCategories(ctx context.Context) error
	AddCategory(ctx context.Context) error
	EditCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: register, login, exit"
	helpUser      = "Available commands: (v)ideos, search [text], category [id|-], categories, show <id>, watch [n], whoami, profile, logout, exit"
	helpAdmin     = "Admin commands: users, adduser, edituser <id>, deluser <id>, allvideos, addvideo, editvideo <id>, delvideo <id>, allcategories, addcategory, editcategory <id>, delcategory <id>"
)

// runREPL starts a simple read–eval–print loop for the training portal CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Commands that need a session are refused while anonymous. Admin
// commands check the role themselves.
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tp %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpUser)
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpUser)
			default:
				printlnFn(helpAnonymous)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue
		}

		if !a.isLoggedIn() {
			if _, known := sessionCommands[cmd]; known {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "profile":
			_ = a.EditUser(ctx, nil)
		case "v", "videos":
			_ = a.Videos(ctx)
		case "search":
			_ = a.Search(ctx, args)
		case "category":
			_ = a.Category(ctx, args)
		case "categories":
			_ = a.Categories(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "watch":
			_ = a.Watch(ctx, args)
		case "users":
			_ = a.Users(ctx)
		case "adduser":
			_ = a.AddUser(ctx)
		case "edituser":
			_ = a.EditUser(ctx, args)
		case "deluser":
			_ = a.DeleteUser(ctx, args)
		case "allvideos":
			_ = a.AllVideos(ctx)
		case "addvideo":
			_ = a.AddVideo(ctx)
		case "editvideo":
			_ = a.EditVideo(ctx, args)
		case "delvideo":
			_ = a.DeleteVideo(ctx, args)
		case "allcategories":
			_ = a.AllCategories(ctx)
		case "addcategory":
			_ = a.AddCategory(ctx)
		case "editcategory":
			_ = a.EditCategory(ctx, args)
		case "delcategory":
			_ = a.DeleteCategory(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

var sessionCommands = map[string]struct{}{
	"logout": {}, "whoami": {}, "profile": {}, "v": {}, "videos": {}, "search": {},
	"category": {}, "categories": {}, "show": {}, "watch": {}, "users": {},
	"adduser": {}, "edituser": {}, "deluser": {}, "allvideos": {}, "addvideo": {},
	"editvideo": {}, "delvideo": {}, "allcategories": {}, "addcategory": {},
	"editcategory": {}, "delcategory": {},
}
