package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
)

func create(recreate, smtp bool) error {
	_, err := os.Stat("go.mod")
	if os.IsNotExist(err) {
		return fmt.Errorf("the dev environment must be created in the repository root (the same directory as the 'go.mod' file)")
	}

	if recreate {
		err = os.RemoveAll("dev/.state")
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	err = os.MkdirAll("dev/.state", 0777)
	if err != nil && !os.IsExist(err) {
		return err
	}

	err = CreateCatalogDB()
	if err != nil {
		return err
	}
	if smtp {
		StartFakeSmtp()
	}
	PrintConfigLocations()

	return nil
}

func main() {
	recreate := flag.Bool("recreate", false, "recreate the dev environment from scratch")
	smtp := flag.Bool("smtp", false, "start a local smtp server that accepts scrape failure alerts")
	flag.Parse()

	err := create(*recreate, *smtp)
	if err != nil {
		slog.Error("failed to create dev environment", "err", err.Error())
		os.Exit(1)
	}
}
