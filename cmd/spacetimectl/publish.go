package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dracory/spacebase/shared/constants"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
)

type cmdPublish struct {
	global *cmdGlobal
}

func (c *cmdPublish) Command() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Use = "publish <database> <module.wasm>"
	cmd.Short = "Publish a WebAssembly module to a database"
	cmd.Long = `Publish a WebAssembly module to a database

The database is created when it does not exist yet.`
	cmd.RunE = c.Run

	return cmd
}

func (c *cmdPublish) Run(cmd *cobra.Command, args []string) error {
	exit, err := checkArgs(cmd, args, 2, 2)
	if exit {
		return err
	}

	database, path := args[0], args[1]
	if !strings.EqualFold(filepath.Ext(path), ".wasm") {
		return fmt.Errorf("%s is not a .wasm file", path)
	}

	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	if st.Size() > constants.MaxModuleSize {
		return fmt.Errorf("module is %s, larger than the %s limit", humanize.IBytes(uint64(st.Size())), humanize.IBytes(constants.MaxModuleSize))
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return err
	}
	if !mtype.Is("application/wasm") {
		return fmt.Errorf("%s is not a WebAssembly module (detected %s)", path, mtype.String())
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	client, err := c.global.client()
	if err != nil {
		return err
	}

	res := client.PublishModule(c.global.context(cmd), database, filepath.Base(path), f)
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}

	fmt.Fprintf(c.global.out, "Published %s (%s) to %q, identity %s\n", filepath.Base(path), humanize.Bytes(uint64(st.Size())), res.DatabaseName, res.DatabaseIdentity)
	return nil
}
