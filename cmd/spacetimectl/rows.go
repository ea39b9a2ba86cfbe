package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/dracory/spacebase/shared/stdb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func errTableNotFound(name string) error {
	return fmt.Errorf("table not found: %s", name)
}

// parseAssignments reads repeated key=value flags.
func parseAssignments(flag string, values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		key, value, ok := strings.Cut(v, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --%s value %q, expected key=value", flag, v)
		}
		out[key] = value
	}
	return out, nil
}

// lookupTable loads the schema of table so values can be typed.
func lookupTable(ctx context.Context, client *stdb.Client, name string) (stdb.TableInfo, error) {
	tables, err := client.GetTables(ctx, "")
	if err != nil {
		return stdb.TableInfo{}, err
	}

	table, found := lo.Find(tables, func(t stdb.TableInfo) bool { return t.Name == name })
	if !found {
		return stdb.TableInfo{}, errTableNotFound(name)
	}
	return table, nil
}

func (g *cmdGlobal) printAffected(res *stdb.QueryResult, verb string) error {
	err := result(res)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "%d row(s) %s\n", res.Affected(), verb)
	return nil
}

type cmdInsert struct {
	global *cmdGlobal

	flagSet    []string
	flagDryRun bool
}

func (c *cmdInsert) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "insert <table> --set <column>=<value>..."
	cmd.Short = "Insert a row"
	cmd.RunE = c.Run

	cmd.Flags().StringArrayVar(&c.flagSet, "set", nil, "Column value as column=value (repeatable)")
	cmd.Flags().BoolVar(&c.flagDryRun, "dry-run", false, "Print the statement instead of running it")

	return cmd
}

func (c *cmdInsert) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	values, err := parseAssignments("set", c.flagSet)
	if err != nil {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	ctx := c.global.context(cmd)
	table, err := lookupTable(ctx, client, args[0])
	if err != nil {
		return err
	}
	data := stdb.CoerceRow(table, values)

	if c.flagDryRun {
		sql, params, err := stdb.BuildInsert(table.Name, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.global.out, stdb.Inline(sql, params))
		return nil
	}

	return c.global.printAffected(client.InsertData(ctx, table.Name, data, ""), "inserted")
}

type cmdUpdate struct {
	global *cmdGlobal

	flagSet    []string
	flagWhere  []string
	flagDryRun bool
}

func (c *cmdUpdate) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "update <table> --set <column>=<value>... --where <column>=<value>..."
	cmd.Short = "Update the rows matching --where"
	cmd.RunE = c.Run

	cmd.Flags().StringArrayVar(&c.flagSet, "set", nil, "New column value as column=value (repeatable)")
	cmd.Flags().StringArrayVar(&c.flagWhere, "where", nil, "Row filter as column=value (repeatable)")
	cmd.Flags().BoolVar(&c.flagDryRun, "dry-run", false, "Print the statement instead of running it")

	return cmd
}

func (c *cmdUpdate) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	set, err := parseAssignments("set", c.flagSet)
	if err != nil {
		return err
	}
	filter, err := parseAssignments("where", c.flagWhere)
	if err != nil {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	ctx := c.global.context(cmd)
	table, err := lookupTable(ctx, client, args[0])
	if err != nil {
		return err
	}
	data := stdb.CoerceRow(table, set)
	where := stdb.CoerceRow(table, filter)

	if c.flagDryRun {
		sql, params, err := stdb.BuildUpdate(table.Name, data, where)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.global.out, stdb.Inline(sql, params))
		return nil
	}

	return c.global.printAffected(client.UpdateData(ctx, table.Name, data, where, ""), "updated")
}

type cmdDelete struct {
	global *cmdGlobal

	flagWhere  []string
	flagDryRun bool
}

func (c *cmdDelete) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "delete <table> --where <column>=<value>..."
	cmd.Short = "Delete the rows matching --where"
	cmd.RunE = c.Run

	cmd.Flags().StringArrayVar(&c.flagWhere, "where", nil, "Row filter as column=value (repeatable)")
	cmd.Flags().BoolVar(&c.flagDryRun, "dry-run", false, "Print the statement instead of running it")

	return cmd
}

func (c *cmdDelete) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	filter, err := parseAssignments("where", c.flagWhere)
	if err != nil {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	ctx := c.global.context(cmd)
	table, err := lookupTable(ctx, client, args[0])
	if err != nil {
		return err
	}
	where := stdb.CoerceRow(table, filter)

	if c.flagDryRun {
		sql, params, err := stdb.BuildDelete(table.Name, where)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.global.out, stdb.Inline(sql, params))
		return nil
	}

	return c.global.printAffected(client.DeleteData(ctx, table.Name, where, ""), "deleted")
}
