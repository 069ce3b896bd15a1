package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Health(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Check(ctx context.Context) error
	Categories(ctx context.Context) error
	Featured(ctx context.Context) error
	MyJobs(ctx context.Context) error
	RegisterFreelancer(ctx context.Context) error
	RegisterClient(ctx context.Context) error
	PostJob(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
//
// Commands:
//
//	health               server liveness
//	login | logout       start or end a session
//	check                is a mobile number registered
//	categories           freelancer counts per category
//	featured             featured jobs
//	myjobs               jobs posted by a client
//	register-freelancer  create a freelancer profile
//	register-client      create a client profile
//	postjob              post a job
//	exit | quit          leave the program
//
// Command errors are printed and the loop continues. It returns on EOF,
// exit, or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		printlnFn(fmt.Sprintf("fh %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: health, check, categories, featured, myjobs, postjob, register-freelancer, register-client, logout, exit")
			} else {
				printlnFn("Available commands: health, login, check, categories, featured, myjobs, register-freelancer, register-client, exit")
			}

		case "health":
			cmdErr = a.Health(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "check":
			cmdErr = a.Check(ctx)

		case "categories":
			cmdErr = a.Categories(ctx)

		case "featured":
			cmdErr = a.Featured(ctx)

		case "myjobs":
			cmdErr = a.MyJobs(ctx)

		case "register-freelancer":
			cmdErr = a.RegisterFreelancer(ctx)

		case "register-client":
			cmdErr = a.RegisterClient(ctx)

		case "postjob":
			cmdErr = a.PostJob(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
