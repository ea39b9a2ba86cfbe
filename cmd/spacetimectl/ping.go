package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type cmdPing struct {
	global *cmdGlobal
}

func (c *cmdPing) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "ping"
	cmd.Short = "Check that the instance is reachable"
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdPing) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 0, 0)
	if exit {
		return err
	}

	client, err := c.global.client()
	if err != nil {
		return err
	}

	err = client.Connect(c.global.context(cmd))
	if err != nil {
		return err
	}

	fmt.Fprintf(c.global.out, "connected to %s\n", client.BaseURL())
	return nil
}
