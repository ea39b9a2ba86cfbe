package main

import (
	"fmt"

	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type cmdDatabases struct {
	global *cmdGlobal
}

func (c *cmdDatabases) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "databases"
	cmd.Short = "Manage databases"

	listCmd := cmdDatabasesList{global: c.global}
	cmd.AddCommand(listCmd.Command())

	createCmd := cmdDatabasesCreate{global: c.global}
	cmd.AddCommand(createCmd.Command())

	infoCmd := cmdDatabasesInfo{global: c.global}
	cmd.AddCommand(infoCmd.Command())

	deleteCmd := cmdDatabasesDelete{global: c.global}
	cmd.AddCommand(deleteCmd.Command())

	// Workaround for subcommand usage errors. See: https://github.com/spf13/cobra/issues/706
	cmd.Args = cobra.NoArgs
	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Usage() }
	return cmd
}

// List.
type cmdDatabasesList struct {
	global *cmdGlobal
}

func (c *cmdDatabasesList) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "list"
	cmd.Aliases = []string{"ls"}
	cmd.Short = "List databases"
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdDatabasesList) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 0, 0)
	if exit {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	names, err := client.ListDatabases(c.global.context(cmd))
	if err != nil {
		return err
	}

	data := lo.Map(names, func(name string, _ int) []string { return []string{name} })
	return render.Table(c.global.out, c.global.flagFormat, []string{"NAME"}, data, names)
}

// Create.
type cmdDatabasesCreate struct {
	global *cmdGlobal
}

func (c *cmdDatabasesCreate) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "create <name>"
	cmd.Short = "Create a database"
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdDatabasesCreate) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	res := client.CreateDatabase(c.global.context(cmd), args[0])
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}

	fmt.Fprintf(c.global.out, "Database %q created\n", args[0])
	return nil
}

// Info.
type cmdDatabasesInfo struct {
	global *cmdGlobal
}

func (c *cmdDatabasesInfo) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "info <name>"
	cmd.Short = "Show database details"
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdDatabasesInfo) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	info, err := client.GetDatabaseInfo(c.global.context(cmd), args[0])
	if err != nil {
		return err
	}

	return render.Table(c.global.out, c.global.flagFormat, []string{"FIELD", "VALUE"}, infoRows(info), info)
}

func infoRows(info *stdb.DatabaseInfo) [][]string {
	return [][]string{
		{"name", info.Name},
		{"identity", info.Identity},
		{"owner_identity", info.OwnerIdentity},
		{"host_type", info.HostType},
	}
}

// Delete.
type cmdDatabasesDelete struct {
	global *cmdGlobal

	flagForce bool
}

func (c *cmdDatabasesDelete) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "delete <name>"
	cmd.Aliases = []string{"rm"}
	cmd.Short = "Delete a database"
	cmd.RunE = c.Run

	cmd.Flags().BoolVar(&c.flagForce, "force", false, "Delete without asking")

	return cmd
}

func (c *cmdDatabasesDelete) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	if !c.flagForce {
		return fmt.Errorf("refusing to delete %q without --force", args[0])
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	err = client.DeleteDatabase(c.global.context(cmd), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(c.global.out, "Database %q deleted\n", args[0])
	return nil
}
