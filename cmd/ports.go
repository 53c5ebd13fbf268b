package cmd

import (
	"fmt"

	"loopauth/internal/callback"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "Show which callback ports are free",
		Long: `Probe every port of the callback range on the loopback interface.
Sign-in uses the first free port; if none is free it fails.`,
		Args: cobra.NoArgs,
		RunE: runPorts,
	}
}

func runPorts(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	cbCfg := cfg.CallbackConfig()
	statuses, err := callback.ProbePorts(cbCfg)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Port", "Status", "Detail"})

	free := 0
	for _, st := range statuses {
		status := text.FgRed.Sprint("in use")
		if st.Available {
			status = text.FgGreen.Sprint("free")
			free++
		}
		t.AppendRow(table.Row{st.Port, status, st.Reason})
	}
	t.Render()

	fmt.Fprintf(cmd.OutOrStdout(), "%d of %d ports free on %s\n", free, len(statuses), cbCfg.Host)
	if free == 0 {
		return fmt.Errorf("%w: %d-%d", callback.ErrNoPortAvailable, cbCfg.PortStart, cbCfg.PortEnd)
	}
	return nil
}
