package main

import (
	"github.com/dracory/spacebase/shared/render"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/spf13/cobra"
)

type cmdBrowse struct {
	global *cmdGlobal

	flagLimit  int
	flagOffset int
}

func (c *cmdBrowse) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "browse <table>"
	cmd.Short = "Show a page of rows from a table"
	cmd.RunE = c.Run

	cmd.Flags().IntVar(&c.flagLimit, "limit", stdb.DefaultPageLimit, "Rows per page")
	cmd.Flags().IntVar(&c.flagOffset, "offset", 0, "Rows to skip")

	return cmd
}

func (c *cmdBrowse) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	res := client.GetTableData(c.global.context(cmd), args[0], "", c.flagLimit, c.flagOffset)
	err = result(res)
	if err != nil {
		return err
	}

	return render.Rows(c.global.out, c.global.flagFormat, res.Data)
}
