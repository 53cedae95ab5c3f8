package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:   "check",
		Usage:  "verify the install tree holds every file the overlay touches",
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	view, err := e.Inspect()
	if err != nil {
		return err
	}
	if err := e.Check(view); err != nil {
		return err
	}
	fmt.Printf(
		"All %d entries present (%d files, %d dirs).\n",
		view.Len(), view.FileCount(), view.DirCount(),
	)
	return nil
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "print the language entries of the source archive",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "print every archive entry, not just the subtree",
			},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	e, err := newEngine(c)
	if err != nil {
		return err
	}
	view, err := e.Inspect()
	if err != nil {
		return err
	}

	if c.Bool("all") {
		fmt.Print(view.Manifest.String())
		return nil
	}

	var b strings.Builder
	for _, entry := range view.Entries {
		flag := "D"
		if view.Item(entry).IsFile {
			flag = "F"
		}
		fmt.Fprintf(&b, "[%s] %s\n", flag, entry.Rel)
	}
	fmt.Fprintf(&b, "---\n%d entries\n", view.Len())
	fmt.Print(b.String())
	return nil
}
