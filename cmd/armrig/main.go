package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/armrig/internal/config"
	"github.com/san-kum/armrig/internal/export"
	"github.com/san-kum/armrig/internal/gui"
	"github.com/san-kum/armrig/internal/metrics"
	"github.com/san-kum/armrig/internal/orient"
	"github.com/san-kum/armrig/internal/rig"
	"github.com/san-kum/armrig/internal/script"
	"github.com/san-kum/armrig/internal/storage"
	"github.com/san-kum/armrig/internal/tui"
	"github.com/san-kum/armrig/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	// run
	save      bool
	live      bool
	frameRate int
	svgOut    string
	traceOut  string
	// sweep
	smoothings []float64
	// plot
	columns []string
	// config
	writeTo string
)

func main() {
	var logOut *os.File

	rootCmd := &cobra.Command{
		Use:           "armrig",
		Short:         "drag a jointed arm around with the mouse",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			interactive := cmd.Name() == "tui" || cmd.Name() == "gui" || cmd.Name() == "armrig"
			f, err := setupLogging(logFile, interactive)
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}
			logOut = f
			return nil
		},
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".armrig", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "append logs to this file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "drag the arm in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "drag the arm in a 3D window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig("")
			if err != nil {
				return err
			}
			rot, err := cfg.NewRotator()
			if err != nil {
				return err
			}
			gui.Run(rot, cfg.NewCamera())
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "replay a pointer script headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().BoolVar(&save, "save", true, "store the trace in the data directory")
	runCmd.Flags().BoolVar(&live, "live", false, "draw the arm while the script runs")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --live")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write the final pose as SVG")
	runCmd.Flags().StringVar(&traceOut, "trace-svg", "", "write the hand path as SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep [script]",
		Short: "replay a script across smoothing factors",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepScript,
	}
	sweepCmd.Flags().Float64SliceVar(&smoothings, "smoothing", []float64{0.05, 0.1, 0.2, 0.4}, "smoothing factors to compare")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "column", nil, "columns to plot (default: every *_error and *_swing)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(os.Stdout, args[0])
		},
	}

	limitsCmd := &cobra.Command{
		Use:   "limits",
		Short: "show joint limits and constraint mode",
		RunE:  showLimits,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print or write the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig("")
			if err != nil {
				return err
			}
			if writeTo != "" {
				return config.Save(writeTo, cfg)
			}
			return config.Encode(os.Stdout, cfg)
		},
	}
	configCmd.Flags().StringVar(&writeTo, "write", "", "write to this path instead of stdout")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, sweepCmd, listCmd, plotCmd, exportCmd, limitsCmd, presetsCmd, configCmd)

	err := rootCmd.Execute()
	if logOut != nil {
		logOut.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// resolveConfig picks --config, then --preset, then fallback, then defaults.
func resolveConfig(fallback string) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	name := preset
	if name == "" {
		name = fallback
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig("")
	if err != nil {
		return err
	}
	rot, err := cfg.NewRotator()
	if err != nil {
		return err
	}
	log.Printf("tui: rotator=%s constraint=%s policy=%s", cfg.Rotator, cfg.Constraint, cfg.Policy)
	return tui.Run(rot, cfg.NewCamera())
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(sc.Preset)
	if err != nil {
		return err
	}
	rot, err := cfg.NewRotator()
	if err != nil {
		return err
	}
	cam := cfg.NewCamera()

	if live {
		r := tui.NewLiveRenderer(os.Stdout, cam, frameRate)
		rot.AddObserver(r)
		r.Start()
		defer r.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("run %s: %d steps", sc.Name, len(sc.Steps))
	res, err := script.Run(ctx, sc, rot, cam, metrics.Defaults(rot.Arm())...)
	if err != nil {
		return fmt.Errorf("run %s: %w", sc.Name, err)
	}

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Printf("scenario: %s\nticks: %d\n", sc.Name, len(res.Samples))
	for _, name := range names {
		fmt.Printf("  %-20s %10.4f\n", name, res.Metrics[name])
	}

	if err := writeSVGs(cfg, rot.Arm(), res); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.RunMetadata{
		Scenario:   sc.Name,
		Rotator:    cfg.Rotator,
		Constraint: cfg.Constraint,
		Policy:     cfg.Policy,
		Smoothing:  cfg.Smoothing,
	}, res)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("saved: %s\n", id)
	return nil
}

func writeSVGs(cfg *config.Config, arm *rig.Arm, res *script.Result) error {
	cam := cfg.NewCamera()
	if svgOut != "" {
		c := viz.NewCanvas(100, 40)
		pose := cam
		pose.Aspect = c.Aspect()
		viz.NewScene().Draw(c, arm, pose, "")
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(c, viz.Themes[0], 4)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote: %s\n", svgOut)
	}
	if traceOut != "" {
		// Replay onto a fresh arm so the run's final pose is left alone.
		rot, err := cfg.NewRotator()
		if err != nil {
			return err
		}
		path := export.HandPath(rot.Arm(), res.Samples, cam)
		svg := export.PathToSVG(path, 800, 600, string(viz.Themes[0].Hand))
		if svg == "" {
			return fmt.Errorf("hand path has fewer than two points")
		}
		if err := os.WriteFile(traceOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote: %s\n", traceOut)
	}
	return nil
}

func sweepScript(cmd *cobra.Command, args []string) error {
	sc, err := script.Load(args[0])
	if err != nil {
		return err
	}
	base, err := resolveConfig(sc.Preset)
	if err != nil {
		return err
	}

	variants := make([]script.Variant, 0, len(smoothings))
	for _, f := range smoothings {
		cfg := *base
		cfg.Smoothing = f
		if err := cfg.Validate(); err != nil {
			return err
		}
		variants = append(variants, script.Variant{
			Label:  fmt.Sprintf("smoothing=%g", f),
			Build:  cfg.NewRotator,
			Camera: cfg.NewCamera(),
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := script.Sweep(ctx, sc, variants)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tSETTLE\tERROR\tTICKS")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%.0f\t%.4f\t%d\n", variants[i].Label, res.Metrics["settle_tick"], res.Metrics["convergence"], len(res.Samples))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tTICKS\tROTATOR\tCONSTRAINT\tSETTLE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%.0f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Rotator,
			run.Constraint,
			run.Metrics["settle_tick"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	picked := columns
	if len(picked) == 0 {
		for _, c := range series.Columns {
			if strings.HasSuffix(c, "_error") || strings.HasSuffix(c, "_swing") {
				picked = append(picked, c)
			}
		}
	}
	if len(picked) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("ticks: %d\n\n", meta.Ticks)

	for _, c := range picked {
		data, ok := series.Values[c]
		if !ok {
			return fmt.Errorf("unknown column %q (available: %s)", c, strings.Join(series.Columns, ", "))
		}
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c+" (degrees) vs tick"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func showLimits(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig("")
	if err != nil {
		return err
	}
	rot, err := cfg.NewRotator()
	if err != nil {
		return err
	}
	arm := rot.Arm()

	fmt.Printf("constraint: %s\n\n", arm.Mode)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "JOINT\tX MIN\tX MAX\tZ MIN\tZ MAX\tCONE")
	for _, j := range arm.Joints {
		if j.Rigid {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\trigid\n", j.ID)
			continue
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\n", j.ID,
			orient.Degrees(j.Limits.X.Min), orient.Degrees(j.Limits.X.Max),
			orient.Degrees(j.Limits.Z.Min), orient.Degrees(j.Limits.Z.Max),
			orient.Degrees(j.Limits.Cone()))
	}
	return w.Flush()
}
