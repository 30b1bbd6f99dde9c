// Package main provides the wireplan command line tool: offline junction
// box, cable and I/O card allocation from CSV instrument I/O lists.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icsuite/wireplan/internal/catalog"
	"github.com/icsuite/wireplan/internal/config"
	"github.com/icsuite/wireplan/internal/engine"
	"github.com/icsuite/wireplan/internal/ingest"
	"github.com/icsuite/wireplan/internal/types"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type cliOptions struct {
	configPath   string
	sparePercent float64
	plantCode    string
	areaCode     string
	area         string
	output       string
}

func (o *cliOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.sparePercent >= 0 {
		cfg.Engine.SparePercent = o.sparePercent
	}
	if o.plantCode != "" {
		cfg.Tags.PlantCode = o.plantCode
	}
	if o.areaCode != "" {
		cfg.Tags.AreaCode = o.areaCode
	}
	return cfg, nil
}

func (o *cliOptions) loadInstruments(path string) ([]types.Instrument, error) {
	instruments, err := ingest.LoadIOList(path)
	if err != nil {
		return nil, err
	}
	if o.area != "" {
		instruments = ingest.FilterByArea(instruments, o.area)
		if len(instruments) == 0 {
			return nil, fmt.Errorf("no instruments in area %q", o.area)
		}
	}
	return instruments, nil
}

func (o *cliOptions) writeResult(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	data = append(data, '\n')

	if o.output == "" || o.output == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(o.output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.output, err)
	}
	return nil
}

func rootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "wireplan",
		Short: "Instrumentation I/O allocation engine",
		Long: `wireplan turns an instrument I/O list into junction box, cable,
terminal and I/O card allocations using deterministic engineering rules.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "configs/config.yaml", "path to config file")
	cmd.PersistentFlags().Float64Var(&opts.sparePercent, "spare", -1, "spare capacity fraction (e.g. 0.20); negative uses the configured default")
	cmd.PersistentFlags().StringVar(&opts.plantCode, "plant", "", "plant code override for generated tags")
	cmd.PersistentFlags().StringVar(&opts.areaCode, "area-code", "", "area code override for generated tags")
	cmd.PersistentFlags().StringVar(&opts.area, "area", "", "only process instruments in this plant area")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "write JSON result to file instead of stdout")

	cmd.AddCommand(summaryCmd(opts))
	cmd.AddCommand(allocateCmd(opts))
	cmd.AddCommand(iocardsCmd(opts))

	return cmd
}

func summaryCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <iolist.csv>",
		Short: "Summarize an I/O list by signal type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			instruments, err := opts.loadInstruments(args[0])
			if err != nil {
				return err
			}

			summary := engine.Summarize(instruments, cfg.Engine.SparePercent)
			return opts.writeResult(summary)
		},
	}
}

func allocateCmd(opts *cliOptions) *cobra.Command {
	var jbSize string
	var cabinetTag string

	cmd := &cobra.Command{
		Use:   "allocate <iolist.csv>",
		Short: "Allocate junction boxes, terminals and cables",
		Long: `Allocate splits the I/O list into analog and digital populations,
plans the junction boxes each needs, assigns every terminal and sizes the
branch and multipair cables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			instruments, err := opts.loadInstruments(args[0])
			if err != nil {
				return err
			}

			preferred := engine.JBSize(jbSize)
			switch preferred {
			case "", engine.JBSmall, engine.JBStandard, engine.JBLarge:
			default:
				return fmt.Errorf("unknown JB size %q (want SMALL, STANDARD or LARGE)", jbSize)
			}

			gen := engine.NewTagGenerator(cfg.Tags)
			if cabinetTag == "" {
				cabinetTag = fmt.Sprintf("%s-%s-MC001", cfg.Tags.PlantCode, cfg.Tags.AreaCode)
			}

			analogInsts, digitalInsts := engine.SplitBySignalCategory(instruments)
			var analogTags, digitalTags engine.SegregationTags
			if len(analogInsts) > 0 {
				analogTags.JBTag = gen.JBTag(types.JBAnalog)
				analogTags.CableTag = gen.MultipairCableTag()
				analogTags.TBTag = gen.TerminalBlockTag(analogTags.CableTag)
			}
			if len(digitalInsts) > 0 {
				digitalTags.JBTag = gen.JBTag(types.JBDigital)
				digitalTags.CableTag = gen.MultipairCableTag()
				digitalTags.TBTag = gen.TerminalBlockTag(digitalTags.CableTag)
			}

			spare := cfg.Engine.SparePercent
			result, err := engine.AllocateBySignalType(instruments, analogTags, digitalTags, cabinetTag, spare, preferred)
			if err != nil {
				return err
			}

			return opts.writeResult(map[string]any{
				"cabinet_tag":   cabinetTag,
				"spare_percent": spare,
				"summary":       engine.Summarize(instruments, spare),
				"allocation":    result,
				"assignments":   result.Assignments(),
			})
		},
	}

	cmd.Flags().StringVar(&jbSize, "jb-size", "", "force a JB size (SMALL, STANDARD, LARGE); empty auto-selects")
	cmd.Flags().StringVar(&cabinetTag, "cabinet", "", "marshalling cabinet tag")

	return cmd
}

func iocardsCmd(opts *cliOptions) *cobra.Command {
	var vendor string
	var systemOverride string
	var catalogDirs []string

	cmd := &cobra.Command{
		Use:   "iocards <iolist.csv>",
		Short: "Allocate I/O cards per control system",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			instruments, err := opts.loadInstruments(args[0])
			if err != nil {
				return err
			}

			cat, err := catalog.New()
			if err != nil {
				return err
			}
			dirs := catalogDirs
			if len(dirs) == 0 {
				dirs = cfg.Catalog.SearchPaths
			}
			for _, dir := range dirs {
				if err := cat.LoadDir(dir); err != nil {
					return err
				}
			}

			if vendor == "" {
				vendor = cfg.Engine.Vendor
			}

			allocator, err := engine.NewAllocator(cat, vendor, cfg.Engine.SparePercent)
			if err != nil {
				return err
			}

			result := allocator.Allocate(instruments, systemOverride)
			return opts.writeResult(map[string]any{
				"vendor":     vendor,
				"allocation": result,
			})
		},
	}

	cmd.Flags().StringVar(&vendor, "vendor", "", "I/O card vendor (default from config)")
	cmd.Flags().StringVar(&systemOverride, "system", "", "force all instruments onto one system (DCS, SIS, ESD, RTU)")
	cmd.Flags().StringSliceVar(&catalogDirs, "catalogs", nil, "extra vendor catalog directories")

	return cmd
}
