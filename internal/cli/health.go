package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yildizm/facemood/internal/predict"
	"github.com/yildizm/go-termfmt"
)

func newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the prediction server is up",
		Long: `Query the prediction server's health route and print what it reports.

Exits with an error when the server is unreachable or does not report
itself healthy.

Examples:
  facemood health
  facemood health --endpoint http://gpu-box:8000 --output json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	client, err := predict.New(cfg.PredictConfig(), newLogger("facemood"))
	if err != nil {
		return fmt.Errorf("invalid endpoint configuration: %w", err)
	}

	health, err := client.Health(commandContext(cmd))
	if err != nil {
		if isVerbose() {
			return fmt.Errorf("%s is unreachable: %w", client.Endpoint(), err)
		}
		return fmt.Errorf("%s is unreachable", client.Endpoint())
	}

	out := cmd.OutOrStdout()
	if getOutputFormat(cfg) == "json" {
		data, err := json.MarshalIndent(health, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal health: %w", err)
		}
		if err := writeOutput(out, data); err != nil {
			return err
		}
	} else {
		writeHealth(out, client.Endpoint(), health, useColor(cfg))
	}

	if !health.Healthy() {
		return fmt.Errorf("server reported status %q", health.Status)
	}
	return nil
}

func writeHealth(w io.Writer, endpoint string, h *predict.Health, color bool) {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !isEmojiDisabled()

	fmt.Fprintf(w, "%s %s\n", GetStatusEmoji(h.Healthy()), endpoint)

	items := []termfmt.TreeItem{{Label: "Status", Value: h.Status}}
	for _, field := range []struct{ label, value string }{
		{"Model", h.Model},
		{"Device", h.Device},
		{"Host", h.Hostname},
		{"Cache", h.CacheHost},
	} {
		if field.value != "" {
			items = append(items, termfmt.TreeItem{Label: field.label, Value: field.value})
		}
	}
	if h.CacheHost != "" {
		items = append(items, termfmt.TreeItem{Label: "Cache connected", Value: strconv.FormatBool(h.CacheConnected)})
	}
	items[len(items)-1].Last = true

	fmt.Fprintln(w, termfmt.TreeViewWithOptions(items, opts))
}
