package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	devenv "schedulestorm-backend/dev/env"
	"schedulestorm-backend/internal/components/db"
)

const catalogDB = "<dev_state>/catalog.db"

func cmd(name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	fullCmd := name
	for _, a := range args {
		fullCmd += " "
		fullCmd += a
	}

	fmt.Printf("$ %s\n", fullCmd)
	err := cmd.Run()
	if err != nil {
		os.Exit(1)
	}
}

// CreateCatalogDB creates the catalog database with its schema applied,
// an existing database is left alone.
func CreateCatalogDB() error {
	path, err := devenv.ResolvePath(catalogDB)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("database already created at", path)
		return nil
	}

	fmt.Println("creating database at", path)
	database, err := db.Config{File: catalogDB}.Open()
	if err != nil {
		return err
	}
	return database.Close()
}

func StartFakeSmtp() {
	cmd("docker", "run", "-d", "--rm", "--name", "stormd-smtp", "-p", "1025:1025", "-p", "1080:1080", "haravich/fake-smtp-server")
}

func PrintConfigLocations() {
	slog.Info("point config.local.json5 at the dev database with `database: { file: \"" + catalogDB + "\" }`, alerts sent to the fake smtp server are listed at http://localhost:1080.")
}
