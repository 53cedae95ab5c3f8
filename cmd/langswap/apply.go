package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func applyCmd() *cli.Command {
	return &cli.Command{
		Name:    "apply",
		Aliases: []string{"zh"},
		Usage:   "back up the install tree and overlay the language files",
		Action:  applyAction,
	}
}

func applyAction(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	if err := e.Apply(); err != nil {
		return err
	}
	fmt.Printf("Language files installed. Backup: %s\n", e.BackupPath())
	return nil
}

func restoreCmd() *cli.Command {
	return &cli.Command{
		Name:    "restore",
		Aliases: []string{"en"},
		Usage:   "remove the language files and restore the backup",
		Action:  restoreAction,
	}
}

func restoreAction(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	if err := e.Revert(); err != nil {
		return err
	}
	fmt.Println("Original files restored.")
	return nil
}
