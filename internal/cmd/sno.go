package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/vaerpub/vaerpub/internal/pkg/snow"
)

// NewSnoCmd creates the sno command.
func NewSnoCmd() *cobra.Command {
	var (
		dateFlag string
		cmFlag   string
	)

	cmd := &cobra.Command{
		Use:   "sno",
		Short: "Register a snow-depth measurement",
		Long: `Register a manual snow-depth measurement in manuelt/sno.csv.

One value per date; registering an existing date overwrites the old value.
The page builder reads this file on the next build.

Examples:
  vaerpub sno                          # interactive form
  vaerpub sno --date 2026-01-15 --cm 12.4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			repoDir, err := resolveRepoDir(cmd, cfg)
			if err != nil {
				return err
			}
			store := snow.NewStore(repoDir)

			if dateFlag != "" || cmFlag != "" {
				return registerOne(store, dateFlag, cmFlag)
			}
			return runSnoForm(store)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Measurement date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&cmFlag, "cm", "", "Snow depth in cm (e.g. 12.4)")

	return cmd
}

// registerOne stores a single measurement given via flags.
func registerOne(store *snow.Store, date, cm string) error {
	if err := snow.ValidateDate(date); err != nil {
		return err
	}
	value, err := snow.ParseSnow(cm)
	if err != nil {
		return err
	}

	if err := store.Add(snow.Measurement{Date: date, SnowCM: value}); err != nil {
		return err
	}
	fmt.Printf("Lagret: %s = %s cm (fil: %s)\n", date, cm, store.Path())
	return nil
}

// runSnoForm loops an interactive huh form until the user is done.
func runSnoForm(store *snow.Store) error {
	for {
		var (
			date string
			cm   string
			more bool
		)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Dato (YYYY-MM-DD)").
					Validate(snow.ValidateDate).
					Value(&date),
				huh.NewInput().
					Title("Snoedybde i cm (f.eks. 12.4)").
					Validate(func(s string) error {
						_, err := snow.ParseSnow(s)
						return err
					}).
					Value(&cm),
			),
			huh.NewGroup(
				huh.NewConfirm().
					Title("Registrere flere maalinger?").
					Affirmative("Ja").
					Negative("Nei").
					Value(&more),
			),
		)

		if err := form.Run(); err != nil {
			return err
		}

		value, err := snow.ParseSnow(cm)
		if err != nil {
			return err
		}
		if err := store.Add(snow.Measurement{Date: date, SnowCM: value}); err != nil {
			return err
		}
		fmt.Printf("Lagret: %s = %s cm (fil: %s)\n", date, cm, store.Path())

		if !more {
			return nil
		}
	}
}
