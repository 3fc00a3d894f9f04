package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/open-teleop/pathscript/pkg/config"
	"github.com/open-teleop/pathscript/pkg/request"
	"github.com/open-teleop/pathscript/pkg/script"
	"github.com/open-teleop/pathscript/pkg/trajectory"
)

var (
	inputFile     = flag.String("input", "", "YAML or JSON request file")
	outputFile    = flag.String("output", "", "Location to write the script")
	dumpStdout    = flag.Bool("stdout", false, "Output to stdout")
	configFile    = flag.String("config", "", "Generator configuration file")
	controlMode   = flag.String("mode", "", "Control mode override (OFFSET or EXPLICIT)")
	moveVerb      = flag.String("verb", "", "Move command verb override")
	noOrientation = flag.Bool("noorient", false, "Omit yaw and pitch from move lines")
	maxSamples    = flag.Int("maxsamples", -1, "Maximum total samples, 0 for unlimited")
)

// overrides are the command line adjustments applied on top of the
// generator configuration.
type overrides struct {
	ControlMode   string
	MoveVerb      string
	NoOrientation bool
	MaxSamples    int
}

// loadSettings resolves the generator configuration file, or the defaults
// when path is empty, and applies o.
func loadSettings(path string, o overrides) (config.GeneratorSettings, error) {
	cfg := &config.Config{}
	if path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return config.GeneratorSettings{}, err
		}
	}

	settings, err := cfg.Settings()
	if err != nil {
		return config.GeneratorSettings{}, err
	}

	if o.ControlMode != "" {
		mode, err := trajectory.ParseControlMode(o.ControlMode)
		if err != nil {
			return config.GeneratorSettings{}, err
		}
		settings.Script.Trajectory.ControlMode = mode
	}
	if o.MoveVerb != "" {
		settings.Script.MoveVerb = o.MoveVerb
	}
	if o.NoOrientation {
		settings.Script.WithOrientation = false
	}
	if o.MaxSamples >= 0 {
		settings.Script.Trajectory.MaxSamples = o.MaxSamples
	}
	return settings, nil
}

// render parses a request document and returns the script text.
func render(doc []byte, settings config.GeneratorSettings) (string, error) {
	var dto request.ScriptRequestDTO
	if err := yaml.Unmarshal(doc, &dto); err != nil {
		return "", fmt.Errorf("could not parse request: %w", err)
	}

	req, err := dto.ToRequest(settings.DelayTicks)
	if err != nil {
		return "", err
	}

	s, err := script.Generate(req, settings.Script)
	if err != nil {
		return "", err
	}
	return s.Text(), nil
}

func main() {
	flag.Parse()
	if len(flag.Args()) > 0 {
		flag.Usage()
		os.Exit(1)
	}

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: No file provided\n")
		flag.Usage()
		os.Exit(1)
	}

	if *outputFile == "" && !*dumpStdout {
		fmt.Fprintf(os.Stderr, "Error: No output location provided\n")
		flag.Usage()
		os.Exit(1)
	}

	settings, err := loadSettings(*configFile, overrides{
		ControlMode:   *controlMode,
		MoveVerb:      *moveVerb,
		NoOrientation: *noOrientation,
		MaxSamples:    *maxSamples,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}

	doc, err := os.ReadFile(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not open file: %s\n", err)
		os.Exit(2)
	}

	text, err := render(doc, settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(3)
	}

	if *dumpStdout {
		fmt.Print(text)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(text), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Could not write to file: %s\n", err)
			os.Exit(2)
		}
	}
}
