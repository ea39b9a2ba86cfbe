package main

import (
	"strconv"
	"strings"

	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type cmdTables struct {
	global *cmdGlobal
}

func (c *cmdTables) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "tables [<table>]"
	cmd.Short = "List tables, or the columns of one table"
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdTables) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 0, 1)
	if exit {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	tables, err := client.GetTables(c.global.context(cmd), "")
	if err != nil {
		return err
	}

	if len(args) == 1 {
		table, found := lo.Find(tables, func(t stdb.TableInfo) bool { return t.Name == args[0] })
		if !found {
			return errTableNotFound(args[0])
		}

		keys := stdb.KeyColumns(table)
		data := lo.Map(table.Columns, func(col stdb.ColumnInfo, _ int) []string {
			return []string{col.Name, col.Type, strconv.FormatBool(col.Nullable), strconv.FormatBool(lo.Contains(keys, col.Name))}
		})
		return render.Table(c.global.out, c.global.flagFormat, []string{"COLUMN", "TYPE", "NULLABLE", "KEY"}, data, table)
	}

	data := lo.Map(tables, func(t stdb.TableInfo, _ int) []string {
		return []string{t.Name, strconv.Itoa(len(t.Columns)), strings.Join(stdb.KeyColumns(t), ",")}
	})
	return render.Table(c.global.out, c.global.flagFormat, []string{"TABLE", "COLUMNS", "KEY"}, data, tables)
}
