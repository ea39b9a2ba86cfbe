package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dracory/spacebase/shared/render"
	"github.com/spf13/cobra"
)

type cmdQuery struct {
	global *cmdGlobal
}

func (c *cmdQuery) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "query <sql>"
	cmd.Short = "Run a SQL statement"
	cmd.Long = `Run a SQL statement

If <sql> is the special value "-", the statement is read from standard input.`
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdQuery) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 1, 1)
	if exit {
		return err
	}

	sql := args[0]
	if sql == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
		sql = string(b)
	}

	sql = strings.TrimSpace(sql)
	if sql == "" {
		return fmt.Errorf("SQL query is required")
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	start := time.Now()
	res := client.Query(c.global.context(cmd), sql, "")
	err = result(res)
	if err != nil {
		return err
	}

	if len(res.Data) == 0 && res.RowsAffected != nil {
		fmt.Fprintf(c.global.out, "%d row(s) affected (%s)\n", *res.RowsAffected, time.Since(start).Round(time.Millisecond))
		return nil
	}

	return render.Rows(c.global.out, c.global.flagFormat, res.Data)
}

