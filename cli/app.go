// Package cli contains the fourws command line application.
package cli

import (
	"io"
	"os"

	clk "github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/steerlab/fourws/components/base/fourws"
	"github.com/steerlab/fourws/config"
	"github.com/steerlab/fourws/input/fake"
	"github.com/steerlab/fourws/logging"
	"github.com/steerlab/fourws/services/baseremotecontrol"
)

// Flags.
const (
	flagConfig      = "config"
	flagScript      = "script"
	flagWatch       = "watch"
	flagDebug       = "debug"
	flagMode        = "mode"
	flagAngleOffset = "angle-offset"
	flagEvents      = "events"
	flagLogFile     = "log-file"
)

var configFlag = &cli.PathFlag{
	Name:    flagConfig,
	Aliases: []string{"c"},
	Usage:   "load vehicle configuration from `FILE`; defaults are used when omitted",
}

var app = &cli.App{
	Name:            "fourws",
	Usage:           "drive a simulated four-wheel-steered vehicle",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    flagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
		&cli.PathFlag{
			Name:  flagLogFile,
			Usage: "also write logs to `FILE`, rotated every 16MB",
		},
	},
	Commands: []*cli.Command{
		{
			Name:  "run",
			Usage: "run a JSON scenario script against a vehicle",
			Flags: []cli.Flag{
				configFlag,
				&cli.PathFlag{
					Name:     flagScript,
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "scenario script `FILE`",
				},
				&cli.BoolFlag{
					Name:  flagWatch,
					Usage: "rerun the script whenever the config file changes",
				},
			},
			Action: RunAction,
		},
		{
			Name:  "preview",
			Usage: "print the trajectory preview for a steering mode",
			Flags: []cli.Flag{
				configFlag,
				&cli.StringFlag{
					Name:  flagMode,
					Value: fourws.Curve.String(),
					Usage: "steering mode: straight, diagonal, pivotal, curve or icamento",
				},
				&cli.Float64Flag{
					Name:  flagAngleOffset,
					Usage: "angle offset in degrees",
				},
			},
			Action: PreviewAction,
		},
		{
			Name:      "drive",
			Usage:     "drive a vehicle with a replayed controller event stream",
			UsageText: "fourws drive [--config FILE] [--events FILE]",
			Flags: []cli.Flag{
				configFlag,
				&cli.PathFlag{
					Name:  flagEvents,
					Usage: "read controller events from `FILE` instead of stdin",
				},
			},
			Action: DriveAction,
		},
		{
			Name:      "schema",
			Usage:     "print the JSON schema of a config or scenario script",
			ArgsUsage: "<config|script>",
			Action:    SchemaAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}

// newLogger builds the command's logger. The returned function closes the --log-file, if any.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewBlankLogger("fourws")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)
	if c.Bool(flagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	logging.ReplaceGlobal(logger)
	path := c.Path(flagLogFile)
	if path == "" {
		return logger, func() {}
	}
	fileAppender := logging.NewFileAppender(path, 16)
	logger.AddAppender(fileAppender)
	return logger, func() {
		if err := fileAppender.Close(); err != nil {
			warningf(c.App.ErrWriter, "cannot close log file: %v", err)
		}
	}
}

// loadConfig reads the --config file, or returns the default config when the flag is unset.
// A log_level in the file applies unless --debug was given.
func loadConfig(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	path := c.Path(flagConfig)
	if path == "" {
		cfg := &config.Config{Vehicle: config.DefaultVehicleConfig()}
		return cfg, nil
	}
	cfg, err := config.Read(c.Context, path, logger)
	if err != nil {
		return nil, err
	}
	if cfg.LogLevel != nil && !c.Bool(flagDebug) {
		logger.SetLevel(*cfg.LogLevel)
	}
	return cfg, nil
}

// RunAction is the corresponding action for 'run'.
func RunAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	script, err := ReadScript(c.Path(flagScript))
	if err != nil {
		return err
	}
	if err := runScenario(c, cfg, script, logger); err != nil {
		return err
	}
	if !c.Bool(flagWatch) {
		return nil
	}
	if cfg.ConfigFilePath == "" {
		return errors.New("--watch requires --config")
	}

	watcher, err := config.NewWatcher(c.Context, cfg.ConfigFilePath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Errorw("error closing config watcher", "error", err)
		}
	}()

	for {
		select {
		case <-c.Context.Done():
			return nil
		case newCfg := <-watcher.Config():
			printf(c.App.Writer, "config %q changed, rerunning scenario", cfg.ConfigFilePath)
			if err := runScenario(c, newCfg, script, logger); err != nil {
				warningf(c.App.ErrWriter, "%v", err)
			}
		}
	}
}

func runScenario(c *cli.Context, cfg *config.Config, script *Script, logger logging.Logger) error {
	v, err := fourws.NewVehicle(cfg.Vehicle, logger.Sublogger(cfg.Vehicle.Name))
	if err != nil {
		return err
	}
	return RunScript(c.Context, v, script, c.App.Writer)
}

// PreviewAction is the corresponding action for 'preview'.
func PreviewAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	mode, err := fourws.ParseMode(c.String(flagMode))
	if err != nil {
		return err
	}
	v, err := fourws.NewVehicle(cfg.Vehicle, logger.Sublogger(cfg.Vehicle.Name))
	if err != nil {
		return err
	}
	preview, err := v.PreviewAt(mode, c.Float64(flagAngleOffset))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", previewTable(preview))
	return nil
}

// DriveAction is the corresponding action for 'drive'. The remote_control section of the config
// tunes the stick mapping.
func DriveAction(c *cli.Context) (err error) {
	logger, closeLog := newLogger(c)
	defer closeLog()
	cfg, err := loadConfig(c, logger)
	if err != nil {
		return err
	}
	rcConf, err := baseremotecontrol.NewConfig(cfg.RemoteControl)
	if err != nil {
		return err
	}
	v, err := fourws.NewVehicle(cfg.Vehicle, logger.Sublogger(cfg.Vehicle.Name))
	if err != nil {
		return err
	}

	events := c.App.Reader
	if path := c.Path(flagEvents); path != "" {
		f, err := os.Open(path) //nolint:gosec
		if err != nil {
			return errors.Wrapf(err, "cannot open events %q", path)
		}
		defer func() {
			err = multierr.Combine(err, f.Close())
		}()
		events = f
	}
	if events == nil {
		events = os.Stdin
	}

	clock := clk.New()
	controller := fake.NewController(driveControls...)
	svc, err := baseremotecontrol.New(c.Context, v, controller, rcConf, clock, logger.Sublogger("remote_control"))
	if err != nil {
		return err
	}
	replayErr := replayDriveEvents(c.Context, events, controller, clock)
	if err := multierr.Combine(replayErr, svc.Close(c.Context)); err != nil {
		return err
	}
	printf(c.App.Writer, "%s", svc.Snapshot())
	return nil
}
