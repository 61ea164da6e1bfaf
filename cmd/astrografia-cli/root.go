package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/admin/astrografia/internal/pkg/ephemeris"
)

var (
	ascendantMode string
	pretty        bool
)

var rootCmd = &cobra.Command{
	Use:          "astrografia-cli",
	Short:        "Compute approximate natal charts without external providers",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ascendantMode, "ascendant-mode", "", "Ascendant method: time-fraction or sidereal (default: by longitude)")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Indent JSON output")
}

func Execute() error {
	return rootCmd.Execute()
}

func parseMode() (ephemeris.AscendantMode, error) {
	mode, err := ephemeris.ParseAscendantMode(ascendantMode)
	if err != nil {
		return "", fmt.Errorf("invalid --ascendant-mode: %w", err)
	}
	return mode, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
