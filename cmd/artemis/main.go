// Package main provides the CLI entrypoint for artemis.
//
// artemis inspects mapped entity types and reads the documents stored for
// them:
//   - inspect: report field kinds and converters of the mapped types in Go packages
//   - kv get / kv delete: read or remove a stored document by key
//   - graph query: run a Gremlin query with bound parameters
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	"artemis/config"
	"artemis/internal/logging"
)

var (
	app = kingpin.New("artemis", "Inspect mapped entities and the documents stored for them")

	configPath = app.Flag("config", "YAML configuration file").Short('c').ExistingFile()

	inspectCmd      = app.Command("inspect", "report how the mapped types of Go packages are converted")
	inspectTag      = inspectCmd.Flag("tag", "struct tag key holding column definitions (default from config)").String()
	inspectStrict   = inspectCmd.Flag("strict", "fail when an error diagnostic is found").Bool()
	inspectPatterns = inspectCmd.Arg("patterns", "Go package patterns").Required().Strings()

	kvCmd       = app.Command("kv", "key-value store")
	kvGet       = kvCmd.Command("get", "print the document stored under a key")
	kvGetKey    = kvGet.Arg("key", "entity key").Required().String()
	kvDelete    = kvCmd.Command("delete", "delete the document stored under a key").Alias("rm")
	kvDeleteKey = kvDelete.Arg("key", "entity key").Required().String()

	graphCmd    = app.Command("graph", "graph database")
	graphQuery  = graphCmd.Command("query", "run a Gremlin query")
	graphScript = graphQuery.Arg("gremlin", "Gremlin script").Required().String()
	graphBind   = graphQuery.Flag("bind", "bound parameter (name=value, repeatable)").Short('b').StringMap()
)

func main() {
	app.HelpFlag.Short('h')
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	os.Exit(run(cmd))
}

// run executes the parsed command and returns the process exit code.
func run(cmd string) int {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		app.FatalIfError(err, "config")
	}

	logger, err := logging.New(cfg.Logging)
	app.FatalIfError(err, "logging")
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case inspectCmd.FullCommand():
		tag := *inspectTag
		if tag == "" {
			tag = cfg.Mapping.Tag
		}
		err = inspectAction(os.Stdout, tag, *inspectStrict, *inspectPatterns)
	case kvGet.FullCommand():
		err = withBucket(ctx, cfg, func(a *kvActions) error { return a.get(ctx, os.Stdout, *kvGetKey) })
	case kvDelete.FullCommand():
		err = withBucket(ctx, cfg, func(a *kvActions) error { return a.delete(ctx, os.Stdout, *kvDeleteKey) })
	case graphQuery.FullCommand():
		err = graphQueryAction(ctx, os.Stdout, cfg.Graph.URL, logger, *graphScript, *graphBind)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return 0
}
