package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nasfs/pkg/client"
	"nasfs/pkg/fstree"

	"github.com/dustin/go-humanize"
)

const (
	sessionFilePerm = 0600
	sessionDirPerm  = 0700
	requestTimeout  = 2 * time.Minute
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "NAS server URL")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	c := client.New(*server)
	loadSession(c)

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	command := args[0]
	rest := args[1:]

	var err error
	switch command {
	case "login":
		err = runLogin(ctx, c, rest)
	case "logout":
		err = runLogout(ctx, c)
	case "list", "ls":
		err = runList(ctx, c, rest)
	case "info":
		err = runInfo(ctx, c, rest)
	case "delete", "rm":
		err = runDelete(ctx, c, rest)
	case "status":
		err = runStatus(ctx, c)
	default:
		fmt.Fprintf(os.Stderr, "nasctl: unknown command %q\n\n", command)
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "nasctl %s failed: %v\n", command, err)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, c *client.Client, args []string) error {
	flags := flag.NewFlagSet("login", flag.ExitOnError)
	username := flags.String("username", "", "Username (prompted when empty)")
	password := flags.String("password", "", "Password (prompted when empty)")
	_ = flags.Parse(args)

	user := *username
	if user == "" {
		var err error
		if user, err = prompt("Username: "); err != nil {
			return err
		}
	}

	pass := *password
	if pass == "" {
		var err error
		if pass, err = prompt("Password: "); err != nil {
			return err
		}
	}

	if err := c.Login(ctx, user, pass); err != nil {
		var apiErr client.APIError
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			return errors.New("invalid username or password")
		}
		return err
	}

	if err := saveSession(c.Token()); err != nil {
		return fmt.Errorf("logged in but session not saved: %w", err)
	}

	fmt.Printf("Logged in as %s\n", user)
	return nil
}

func runLogout(ctx context.Context, c *client.Client) error {
	err := c.Logout(ctx)
	clearSession()
	if err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func runList(ctx context.Context, c *client.Client, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	node, err := c.Browse(ctx, path)
	if err != nil {
		return err
	}

	if node.Entry != nil {
		printEntry(*node.Entry)
		return nil
	}

	for _, entry := range node.Listing.Entries {
		printEntry(entry)
	}
	return nil
}

func runInfo(ctx context.Context, c *client.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: nasctl info <path>")
	}

	node, err := c.Browse(ctx, args[0])
	if err != nil {
		return err
	}

	if node.Listing != nil {
		fmt.Printf("Path:      %s\n", displayPath(node.Listing.Path))
		fmt.Printf("Category:  %s\n", fstree.CategoryDirectory)
		fmt.Printf("Entries:   %d\n", len(node.Listing.Entries))
		return nil
	}

	entry := node.Entry
	fmt.Printf("Path:      %s\n", entry.RelativePath)
	fmt.Printf("Category:  %s\n", entry.Category)
	if entry.Extension != "" {
		fmt.Printf("Extension: %s\n", entry.Extension)
	}
	fmt.Printf("Size:      %s (%d bytes)\n", humanize.Bytes(uint64(entry.SizeBytes)), entry.SizeBytes)
	return nil
}

func runDelete(ctx context.Context, c *client.Client, args []string) error {
	flags := flag.NewFlagSet("delete", flag.ExitOnError)
	force := flags.Bool("force", false, "Delete without asking")
	_ = flags.Parse(args)

	if flags.NArg() == 0 {
		return errors.New("usage: nasctl delete [-force] <path>")
	}
	path := flags.Arg(0)

	if !*force {
		answer, err := prompt(fmt.Sprintf("Delete %s? [y/N] ", path))
		if err != nil {
			return err
		}
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := c.Delete(ctx, path); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", path)
	return nil
}

func runStatus(ctx context.Context, c *client.Client) error {
	status, err := c.Status(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Version:   %s\n", status.Version)
	fmt.Printf("Uptime:    %s\n", status.Uptime)
	fmt.Printf("Storage:   %s used of %s (%s available)\n",
		humanize.Bytes(status.Storage.Used),
		humanize.Bytes(status.Storage.Total),
		humanize.Bytes(status.Storage.Available))
	return nil
}

// printEntry prints one listing line: category, size, name.
func printEntry(entry fstree.Entry) {
	name := entry.Name
	size := humanize.Bytes(uint64(entry.SizeBytes))
	if entry.IsDir() {
		name += "/"
		size = "-"
	}
	fmt.Printf("%-15s %10s  %s\n", entry.Category, size, name)
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// sessionFile is where the session token is kept between invocations.
func sessionFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nasctl", "session"), nil
}

func loadSession(c *client.Client) {
	path, err := sessionFile()
	if err != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	c.SetToken(strings.TrimSpace(string(data)))
}

func saveSession(token string) error {
	path, err := sessionFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), sessionDirPerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), sessionFilePerm)
}

func clearSession() {
	if path, err := sessionFile(); err == nil {
		_ = os.Remove(path)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `nasctl - personal NAS command line client

Usage:
  nasctl [-server URL] <command> [arguments]

Commands:
  login [-username U] [-password P]   Log in and save the session
  logout                              Log out and forget the session
  list [path]                         List a directory (alias: ls)
  info <path>                         Show metadata for one node
  delete [-force] <path>              Delete a file or directory (alias: rm)
  status                              Show server version and storage usage

Flags:
`)
	flag.PrintDefaults()
}
