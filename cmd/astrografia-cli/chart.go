package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/admin/astrografia/internal/domain"
	astroUsecase "github.com/admin/astrografia/internal/usecases/astro"
)

var (
	chartDate      string
	chartTime      string
	chartLatitude  float64
	chartLongitude float64
	chartTimezone  float64
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Print the approximate chart for a birth moment as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseMode()
		if err != nil {
			return err
		}

		birth := domain.BirthData{
			Date: chartDate,
			Time: chartTime,
		}
		if cmd.Flags().Changed("lat") {
			birth.Latitude = &chartLatitude
		}
		if cmd.Flags().Changed("lon") {
			birth.Longitude = &chartLongitude
		}
		if cmd.Flags().Changed("tz") {
			birth.Timezone = &chartTimezone
		}
		if err := birth.Validate(); err != nil {
			return err
		}

		return writeJSON(cmd.OutOrStdout(), astroUsecase.ApproximateChart(birth, mode))
	},
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Print the approximate current sky (UTC) as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := parseMode()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		zero := 0.0
		birth := domain.BirthData{
			Date:     now.Format("2006-01-02"),
			Time:     now.Format("15:04"),
			Timezone: &zero,
		}

		return writeJSON(cmd.OutOrStdout(), astroUsecase.ApproximateChart(birth, mode))
	},
}

func init() {
	chartCmd.Flags().StringVar(&chartDate, "date", "", "Birth date, YYYY-MM-DD")
	chartCmd.Flags().StringVar(&chartTime, "time", "", "Birth time, HH:MM")
	chartCmd.Flags().Float64Var(&chartLatitude, "lat", 0, "Latitude in degrees")
	chartCmd.Flags().Float64Var(&chartLongitude, "lon", 0, "Longitude in degrees, east positive")
	chartCmd.Flags().Float64Var(&chartTimezone, "tz", 0, "UTC offset in hours")
	_ = chartCmd.MarkFlagRequired("date")
	_ = chartCmd.MarkFlagRequired("time")

	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(positionsCmd)
}
