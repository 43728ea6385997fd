package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/walkjournal/pkg/app"
	"tableflip.dev/walkjournal/pkg/store"
)

type Info struct {
	Config  *store.FileConfig
	Store   *store.Store
	Service *app.Service
	// DraftDir is where the unsaved walk is kept.
	DraftDir string
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = color.Output
	}

	if override := os.Getenv("WALKJOURNAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(n.Out, "WALKJOURNAL_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(n.Out, "WALKJOURNAL_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	file := n.Config.File
	if file == "" {
		file = "(none)"
	}
	tbl.AddRow(bold.Sprint("Config file"), file)
	tbl.AddRow(bold.Sprint("Path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("Name"), n.Config.Name())
	tbl.AddRow(bold.Sprint("Backend"), n.Config.Backend())
	tbl.AddRow(bold.Sprint("Log level"), n.Config.Log.Level)
	if n.Config.Log.File != "" {
		tbl.AddRow(bold.Sprint("Log file"), n.Config.Log.File)
	}

	if n.Store == nil || n.Service == nil {
		return fmt.Errorf("failed to open the journal")
	}
	tbl.AddRow(bold.Sprint("Directory"), n.Store.Dir())
	tbl.AddRow(bold.Sprint("Schema version"), n.Store.Version())

	count, err := n.Service.Count(ctx)
	if err != nil {
		return err
	}
	tbl.AddRow(bold.Sprint("Entries"), count)

	_, hasDraft, err := n.Service.LoadDraft()
	draftState := "none"
	switch {
	case err != nil:
		draftState = fmt.Sprintf("unreadable (%v)", err)
	case hasDraft:
		draftState = "unsaved walk in " + n.DraftDir
	}
	tbl.AddRow(bold.Sprint("Draft"), draftState)

	_, _ = fmt.Fprintln(n.Out, tbl)
	return nil
}
