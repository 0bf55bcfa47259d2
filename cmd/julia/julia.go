package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/willbeason/julia-spectrum/pkg/render"
	"github.com/willbeason/julia-spectrum/pkg/sink"
)

const (
	widthFlag         = "width"
	heightFlag        = "height"
	cRealFlag         = "c-real"
	cImagFlag         = "c-imag"
	maxIterationsFlag = "max-iterations"
	workersFlag       = "workers"
	timeoutFlag       = "timeout"
	outputFlag        = "output"

	defaultOutput = "fractal.png"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "julia",
		Short: "Render a Julia set colored by visible light wavelength",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	defaults := render.DefaultConfig()

	flags := cmd.Flags()
	flags.Int(widthFlag, defaults.Width, "image width in pixels")
	flags.Int(heightFlag, defaults.Height, "image height in pixels")
	flags.Float64(cRealFlag, real(defaults.C), "real part of the Julia parameter c")
	flags.Float64(cImagFlag, imag(defaults.C), "imaginary part of the Julia parameter c")
	flags.Int(maxIterationsFlag, defaults.MaxIterations, "iteration cap per pixel")
	flags.Int(workersFlag, defaults.Workers, "number of rendering goroutines")
	flags.Duration(timeoutFlag, 0, "abort the render after this long; 0 disables")
	flags.StringP(outputFlag, "o", defaultOutput, "output file; .png, .jpg or .zst")

	return cmd
}

func configFromFlags(cmd *cobra.Command) (render.Config, string, error) {
	flags := cmd.Flags()
	cfg := render.Config{}

	var err error
	if cfg.Width, err = flags.GetInt(widthFlag); err != nil {
		return cfg, "", err
	}
	if cfg.Height, err = flags.GetInt(heightFlag); err != nil {
		return cfg, "", err
	}

	cReal, err := flags.GetFloat64(cRealFlag)
	if err != nil {
		return cfg, "", err
	}
	cImag, err := flags.GetFloat64(cImagFlag)
	if err != nil {
		return cfg, "", err
	}
	cfg.C = complex(cReal, cImag)

	if cfg.MaxIterations, err = flags.GetInt(maxIterationsFlag); err != nil {
		return cfg, "", err
	}
	if cfg.Workers, err = flags.GetInt(workersFlag); err != nil {
		return cfg, "", err
	}
	if cfg.Timeout, err = flags.GetDuration(timeoutFlag); err != nil {
		return cfg, "", err
	}

	output, err := flags.GetString(outputFlag)
	if err != nil {
		return cfg, "", err
	}

	return cfg, output, cfg.Validate()
}

func runCmd(cmd *cobra.Command, _ []string) error {
	cfg, output, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	// Fail on an unknown extension before spending time rendering.
	if _, err = sink.FormatOf(output); err != nil {
		return err
	}

	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	runID := uuid.New()
	log.Printf("run %s: rendering %dx%d c=%v max-iterations=%d workers=%d",
		runID, cfg.Width, cfg.Height, cfg.C, cfg.MaxIterations, cfg.Workers)

	start := time.Now()
	img, err := render.Render(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	log.Printf("run %s: rendered in %v", runID, time.Since(start))

	err = sink.Save(output, img)
	if err != nil {
		return err
	}
	log.Printf("run %s: wrote %s", runID, output)

	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
