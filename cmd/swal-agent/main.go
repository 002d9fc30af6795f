// Command swal-agent is the switch-agent control daemon.
//
// The agent drives a switching ASIC through a hal.Adapter: it creates the
// switch object, provisions startup ports and VLANs from configuration,
// then serves until stopped, tearing down every object it owns on the way
// out. With warm-boot enabled it snapshots the live object inventory to a
// fingerprinted state file at shutdown.
//
// Usage:
//
//	swal-agent [flags]
//
// Flags:
//
//	-config string      Configuration file path (YAML)
//	-adapter string     Hardware adapter backend: sim (default "sim")
//	-trace string       Hardware trace file (.swlog), overrides config
//	-log-level string   Log level: debug, info, warn, error
//	-interactive        Run the interactive console
//
// Examples:
//
//	# Start with a config file
//	swal-agent -config /etc/swal/agent.yaml
//
//	# Poke at the lab adapter interactively with full tracing
//	swal-agent -interactive -trace agent.swlog -log-level debug
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/swal-project/swal-go/cmd/swal-agent/interactive"
	"github.com/swal-project/swal-go/internal/halsim"
	"github.com/swal-project/swal-go/pkg/announce"
	"github.com/swal-project/swal-go/pkg/config"
	"github.com/swal-project/swal-go/pkg/hal"
	"github.com/swal-project/swal-go/pkg/manager"
	"github.com/swal-project/swal-go/pkg/oplog"
	"github.com/swal-project/swal-go/pkg/version"
	"github.com/swal-project/swal-go/pkg/warmboot"
)

func main() {
	var (
		configPath  = flag.String("config", "", "configuration file path")
		adapterName = flag.String("adapter", "sim", "hardware adapter backend")
		traceFile   = flag.String("trace", "", "hardware trace file, overrides config")
		logLevel    = flag.String("log-level", "", "log level: debug, info, warn, error")
		console     = flag.Bool("interactive", false, "run the interactive console")
	)
	flag.Parse()

	if err := run(*configPath, *adapterName, *traceFile, *logLevel, *console); err != nil {
		fmt.Fprintf(os.Stderr, "swal-agent: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, adapterName, traceFile, logLevel string, interactiveMode bool) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if traceFile != "" {
		cfg.Trace.File = traceFile
	}
	if logLevel != "" {
		cfg.Agent.LogLevel = logLevel
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.Agent.LogLevel),
	}))
	slog.SetDefault(logger)

	agentID := uuid.NewString()

	// Trace pipeline: console diagnostics always, file trace when set.
	loggers := []oplog.Logger{oplog.NewSlogAdapter(logger)}
	var fileLog *oplog.FileLogger
	if cfg.Trace.File != "" {
		fl, err := oplog.NewFileLogger(cfg.Trace.File)
		if err != nil {
			return fmt.Errorf("open trace file: %w", err)
		}
		fileLog = fl
		defer fileLog.Close()
		loggers = append(loggers, fl)
	}
	opLogger := oplog.WithAgentID(oplog.NewMultiLogger(loggers...), agentID)

	var adapter hal.Adapter
	switch adapterName {
	case "sim":
		adapter = halsim.New()
	default:
		return fmt.Errorf("unknown adapter backend %q", adapterName)
	}

	switches := manager.NewSwitchManager(adapter, opLogger)
	switchID, err := switches.Create(hal.MAC{0x02, 0x00, 0x00, 0x00, 0x00, 0x01})
	if err != nil {
		return err
	}
	logger.Info("switch created", "switch_id", switchID.String(), "agent_id", agentID)

	table := manager.NewTable(adapter, opLogger, switchID)

	if err := provision(table, cfg); err != nil {
		// Provisioning failures leave partial state behind; tear it down
		// before reporting.
		_ = table.Teardown()
		_ = switches.Remove()
		return err
	}

	if cfg.Warmboot.StatePath != "" {
		store := warmboot.NewStore(cfg.Warmboot.StatePath)
		prior, err := store.Load()
		if err != nil {
			logger.Warn("warmboot state rejected", "error", err)
		} else if prior != nil {
			logger.Info("warmboot state loaded",
				"saved_at", prior.SavedAt,
				"ports", len(prior.Ports),
				"routes", len(prior.Routes))
		}
	}

	var announcer *announce.Announcer
	if cfg.Announce.Enabled {
		instance := cfg.Agent.Name
		if instance == "" {
			instance, _ = os.Hostname()
		}
		announcer = announce.New(announce.Config{Instance: instance, Port: cfg.Announce.Port})
		info := announce.Info{AgentID: agentID, Version: version.Current, Adapter: adapterName}
		if err := announcer.Start(info); err != nil {
			logger.Warn("mDNS announce failed", "error", err)
		} else {
			defer announcer.Stop()
		}
	}

	if interactiveMode {
		console, err := interactive.New(table, switches)
		if err != nil {
			return err
		}
		console.Run()
	} else {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		logger.Info("agent running", "adapter", adapterName)
		<-sig
		logger.Info("shutting down")
	}

	if cfg.Warmboot.StatePath != "" {
		state, err := warmboot.Snapshot(table, agentID)
		if err != nil {
			logger.Warn("warmboot snapshot failed", "error", err)
		} else if err := warmboot.NewStore(cfg.Warmboot.StatePath).Save(state); err != nil {
			logger.Warn("warmboot save failed", "error", err)
		}
	}

	if err := table.Teardown(); err != nil {
		logger.Warn("teardown incomplete", "error", err)
	}
	return switches.Remove()
}

// provision creates the startup objects the configuration lists.
func provision(table *manager.Table, cfg *config.Config) error {
	for _, spec := range cfg.Startup.Ports {
		_, err := table.Ports().Create(manager.PortConfig{
			Lanes:   spec.Lanes,
			Speed:   spec.Speed,
			MTU:     spec.MTU,
			AdminUp: spec.AdminUp,
		})
		if err != nil {
			return fmt.Errorf("provision port: %w", err)
		}
	}
	for _, vlanID := range cfg.Startup.Vlans {
		if _, err := table.Vlans().Create(vlanID); err != nil {
			return fmt.Errorf("provision vlan %d: %w", vlanID, err)
		}
	}
	return nil
}

func slogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
