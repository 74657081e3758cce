package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nasfs/pkg/log"
	"nasfs/pkg/userdb"
)

const (
	databaseFileName = "nas.db"
	userDirPerm      = 0750
)

func main() {
	// Initialize logger first
	_ = log.Logger

	dbPath := flag.String("db", "", "User database path (defaults to <storage>/nas.db)")
	storageRoot := flag.String("storage", "", "Storage root, used to locate the database and create the user directory")
	username := flag.String("username", "", "Username to create")
	password := flag.String("password", "", "Password for the new user (prompted when empty)")
	list := flag.Bool("list", false, "List existing users instead of creating one")
	flag.Parse()

	path := *dbPath
	if path == "" && *storageRoot != "" {
		path = filepath.Join(*storageRoot, databaseFileName)
	}
	if path == "" {
		log.Fatal().Msg("Either -db or -storage must be given")
	}

	users, err := userdb.NewStore(path)
	if err != nil {
		log.Fatal().Err(err).Str("db", path).Msg("Failed to open user database")
	}
	defer func() { _ = users.Close() }()

	if err := users.Initialize(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize user database")
	}

	if *list {
		listUsers(users)
		return
	}

	if *username == "" {
		log.Fatal().Msg("-username is required")
	}

	pass := *password
	if pass == "" {
		pass, err = promptPassword(*username)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read password")
		}
	}

	createUser(users, *storageRoot, *username, pass)
}

func listUsers(users *userdb.Store) {
	all, err := users.ListUsers()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list users")
	}

	if len(all) == 0 {
		fmt.Println("No users yet")
		return
	}

	for _, user := range all {
		fmt.Printf("%s  %s\n", user.CreatedAt.Format("2006-01-02 15:04"), user.Username)
	}
}

func createUser(users *userdb.Store, storageRoot, username, password string) {
	if _, err := users.CreateUser(username, password); err != nil {
		switch {
		case errors.Is(err, userdb.ErrUserExists):
			log.Fatal().Str("username", username).Msg("User already exists")
		case errors.Is(err, userdb.ErrInvalidUsername):
			log.Fatal().Str("username", username).Msg("Invalid username: use 3-32 lowercase letters, digits, - or _")
		case errors.Is(err, userdb.ErrInvalidCredentials):
			log.Fatal().Msg("Password must not be empty")
		default:
			log.Fatal().Err(err).Msg("Failed to create user")
		}
	}

	if storageRoot != "" {
		userDir := filepath.Join(storageRoot, username)
		if err := os.MkdirAll(userDir, userDirPerm); err != nil {
			log.Fatal().Err(err).Str("dir", userDir).Msg("User created but directory creation failed")
		}
	}

	fmt.Printf("User %s created\n", username)
}

func promptPassword(username string) (string, error) {
	fmt.Printf("Password for %s: ", username)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
