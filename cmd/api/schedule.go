package main

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"petcontrol/internal/domain/medications"
	"petcontrol/internal/platform/wire"
)

var (
	scheduleStart  string
	scheduleDays   int
	schedulePerDay int
)

// scheduleCmd imprime las tomas que generaría un tratamiento, sin persistir nada.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Previsualiza las tomas de un tratamiento",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := civil.DateOf(time.Now())
		if scheduleStart != "" {
			d, err := wire.DecodeDate(scheduleStart)
			if err != nil {
				return err
			}
			start = d
		}
		doses, err := medications.Generate(start, scheduleDays, schedulePerDay)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, d := range doses {
			fmt.Fprintf(out, "%3d  %s\n", d.Index, wire.EncodeDate(d.DueDate))
		}
		fmt.Fprintf(out, "end_date %s\n", wire.EncodeDate(medications.EndDate(start, scheduleDays)))
		return nil
	},
}

func init() {
	scheduleCmd.Flags().StringVar(&scheduleStart, "start", "", "fecha de inicio YYYY-MM-DD (default hoy)")
	scheduleCmd.Flags().IntVar(&scheduleDays, "days", 7, "duración en días")
	scheduleCmd.Flags().IntVar(&schedulePerDay, "per-day", 2, "tomas por día")
}
