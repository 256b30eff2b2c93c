package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/chart"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/ephemeris"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/kundli"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/models"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/store"
	"github.com/arvindbhardwaj2003/kundliDesign/pkg/utils"
)

// addChartCommands adds the kundli generation and retrieval commands.
func addChartCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newGenerateCmd(app))
	rootCmd.AddCommand(newDeriveCmd(app))
	rootCmd.AddCommand(newShowCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
	rootCmd.AddCommand(newBatchCmd(app))
}

func newGenerateCmd(app *App) *cobra.Command {
	var (
		name      string
		date      string
		clock     string
		utcOffset string
		lat, lon  float64
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and store a kundli",
		Long: `Generate the Lagna, Navamsa, Moon and Transit charts for a birth and store them.

Examples:
  kundli generate --name "Asha" --date 1990-05-14 --time 09:30 --utc-offset +05:30 --lat 28.6139 --lon 77.2090
  kundli generate --name "Asha" --date 1990-05-14 --time 09:30 --lat 28.6139 --lon 77.2090 --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			birth, err := parseBirth(name, date, clock, utcOffset, lat, lon)
			if err != nil {
				return err
			}

			svc, err := app.Service(!dryRun)
			if err != nil {
				return err
			}
			record, err := svc.Generate(cmd.Context(), birth, kundli.GenerateOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(record)
			}
			renderRecord(output, record, app.Config.UI.DateFormat, false)
			if dryRun {
				output.Warning("Dry run: kundli not saved")
			} else {
				output.Success("✓ Kundli saved with ID %s", record.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the person")
	cmd.Flags().StringVar(&date, "date", "", "birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clock, "time", "", "birth time (HH:MM, 24h)")
	cmd.Flags().StringVar(&utcOffset, "utc-offset", "+05:30", "UTC offset of the birth place (+05:30 or 5.5)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude in decimal degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude in decimal degrees")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "derive the charts without saving")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

// parseBirth assembles BirthData from CLI flags.
func parseBirth(name, date, clock, utcOffset string, lat, lon float64) (models.BirthData, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return models.BirthData{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", date)
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return models.BirthData{}, fmt.Errorf("invalid --time %q: expected HH:MM", clock)
	}
	return models.BirthData{
		Name:      name,
		Year:      d.Year(),
		Month:     int(d.Month()),
		Day:       d.Day(),
		Hour:      t.Hour(),
		Minute:    t.Minute(),
		UTCOffset: utcOffset,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func newDeriveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "derive <lagna-file>",
		Short: "Derive Moon and Navamsa charts from a Lagna chart file",
		Long: `Derive the Moon and Navamsa charts from a Lagna chart stored as YAML or JSON.

The file maps house numbers 1..12 to {sign_num, asc, planets}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			lagna, err := ephemeris.LoadChart(args[0])
			if err != nil {
				return err
			}
			svc, err := app.Service(false)
			if err != nil {
				return err
			}
			derived, err := svc.Derive(lagna)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(derived)
			}
			renderChart(output, "Lagna Chart", lagna)
			renderChart(output, "Moon Chart", derived.Moon)
			renderChart(output, "Navamsa Chart (D9)", derived.Navamsa)
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var transit bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored kundli",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			svc, err := app.Service(true)
			if err != nil {
				return err
			}
			record, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(record)
			}
			renderRecord(output, record, app.Config.UI.DateFormat, transit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&transit, "transit", false, "also show the transit chart")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var (
		limit int
		name  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent kundlis",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			svc, err := app.Service(true)
			if err != nil {
				return err
			}
			records, err := svc.List(cmd.Context(), store.KundliFilter{Name: name, Limit: limit})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				summaries := make([]models.KundliSummary, len(records))
				for i := range records {
					summaries[i] = records[i].Summary()
				}
				return output.JSON(summaries)
			}

			if len(records) == 0 {
				output.Dim("No kundlis found")
				return nil
			}

			output.Heading("Recent Kundlis")
			table := NewTable(output, "ID", "NAME", "BORN", "PLACE", "CREATED")
			for _, r := range records {
				table.AddRow(
					r.ID,
					utils.Truncate(r.Name, 24),
					formatBirth(&r, app.Config.UI.DateFormat),
					utils.FormatCoordinates(r.Latitude, r.Longitude),
					r.CreatedAt.Local().Format("02-Jan-2006 15:04"),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", store.DefaultListLimit, "number of kundlis to show")
	cmd.Flags().StringVar(&name, "name", "", "filter by name (substring, case-insensitive)")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored kundli",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			svc, err := app.Service(true)
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("✓ Kundli %s deleted", args[0])
			return nil
		},
	}
}

// BatchFile is the YAML layout read by 'kundli batch'.
type BatchFile struct {
	Births []models.BirthData `yaml:"births"`
}

func newBatchCmd(app *App) *cobra.Command {
	var (
		concurrency int
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "batch <births.yaml>",
		Short: "Generate kundlis for every birth in a YAML file",
		Long: `Generate kundlis for every birth listed in a YAML file.

Example file:
  births:
    - name: Asha
      year: 1990
      month: 5
      day: 14
      hour: 9
      minute: 30
      utc_offset: "+05:30"
      latitude: 28.6139
      longitude: 77.2090`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)

			births, err := loadBatchFile(args[0])
			if err != nil {
				return err
			}
			if concurrency < 1 {
				concurrency = app.Config.Batch.Concurrency
			}

			svc, err := app.Service(!dryRun)
			if err != nil {
				return err
			}
			records, err := svc.GenerateBatch(cmd.Context(), births, concurrency, kundli.GenerateOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(records)
			}

			output.Heading("Generated %d kundlis", len(records))
			table := NewTable(output, "ID", "NAME", "LAGNA", "MOON SIGN", "NAVAMSA LAGNA")
			for _, r := range records {
				table.AddRow(
					r.ID,
					utils.Truncate(r.Name, 24),
					r.Lagna.House(1).Sign.Name(),
					r.Moon.House(1).Sign.Name(),
					r.Navamsa.House(1).Sign.Name(),
				)
			}
			table.Render()
			if dryRun {
				output.Warning("Dry run: nothing saved")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel generations (default: batch.concurrency from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "derive the charts without saving")
	return cmd
}

func loadBatchFile(path string) ([]models.BirthData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}
	var file BatchFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing batch file %s: %w", path, err)
	}
	if len(file.Births) == 0 {
		return nil, fmt.Errorf("batch file %s lists no births", path)
	}
	return file.Births, nil
}

func renderRecord(output *Output, r *models.KundliRecord, dateFormat string, withTransit bool) {
	output.Box("Kundli: "+r.Name, []string{
		"ID:     " + r.ID,
		"Born:   " + formatBirth(r, dateFormat),
		"Place:  " + utils.FormatCoordinates(r.Latitude, r.Longitude),
		"Lagna:  " + r.Lagna.House(1).Sign.Name(),
		"Moon:   " + r.Moon.House(1).Sign.Name(),
	})
	output.Println()
	renderChart(output, "Lagna Chart", r.Lagna)
	renderChart(output, "Moon Chart", r.Moon)
	renderChart(output, "Navamsa Chart (D9)", r.Navamsa)
	if withTransit {
		renderChart(output, "Transit Chart", r.Transit)
	}
}

// formatBirth renders the birth time in the birth place's own offset.
func formatBirth(r *models.KundliRecord, layout string) string {
	if layout == "" {
		layout = "02-Jan-2006 15:04 MST"
	}
	offset, err := models.ParseUTCOffset(r.UTCOffset)
	if err != nil {
		return r.BirthDateTime.Format(layout)
	}
	zone := time.FixedZone("UTC"+r.UTCOffset, int(offset/time.Second))
	return r.BirthDateTime.In(zone).Format(layout)
}

// renderChart prints one chart as a house table.
func renderChart(output *Output, title string, c chart.Chart) {
	output.Heading(title)
	table := NewTable(output, "HOUSE", "SIGN", "MODALITY", "ASC", "PLANETS")
	for n, h := range c.Houses() {
		asc := "-"
		if h.Ascendant != "" {
			asc = output.Yellow(displayPosition(h.Ascendant))
		}
		table.AddRow(
			fmt.Sprintf("%d", n+1),
			fmt.Sprintf("%2d %s", int(h.Sign), h.Sign.Name()),
			h.Sign.Modality().String(),
			asc,
			formatPlanets(h.Planets),
		)
	}
	table.Render()
	output.Println()
}

func formatPlanets(placements []chart.Placement) string {
	items := make([]string, 0, len(placements))
	for _, p := range placements {
		if p.Position == "" {
			items = append(items, string(p.Planet))
			continue
		}
		items = append(items, string(p.Planet)+" "+displayPosition(p.Position))
	}
	return utils.FormatList(items)
}

func displayPosition(pos string) string {
	return strings.TrimLeft(pos, "+>")
}
