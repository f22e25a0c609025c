package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/nuki-bridge-client/internal/config"
	"github.com/samvad-hq/nuki-bridge-client/internal/logger"
	"github.com/samvad-hq/nuki-bridge-client/pkg/bridgeapi"
	"github.com/samvad-hq/nuki-bridge-client/pkg/httpclient"
)

const usage = `usage: nukictl [flags] <command> [args]

commands:
  login [token]                      check a token by listing locks
  locks                              list paired locks
  state <nukiId>                     query the state of a lock
  action <nukiId> <action>           run a lock action (unlock, lock, unlatch, ...)
  callbacks list                     list registered callbacks
  callbacks add <url>                register a callback url
  callbacks remove <id>              remove a callback

flags:
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nukictl: load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nukictl: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "nukictl: %v\n", err)
		}
		stop()
		_ = logger.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("nukictl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	baseURL := fs.String("base-url", cfg.BridgeBaseURL, "bridge base url")
	token := fs.String("token", "", "bridge api token (defaults to BRIDGE_TOKEN)")
	timeout := fs.Duration("timeout", cfg.BridgeTimeout, "request timeout")
	noWait := fs.Bool("no-wait", false, "return before the lock action completes")
	insecure := fs.Bool("insecure", false, "skip TLS certificate verification")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		*token = cfg.BridgeToken
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}

	client := httpclient.NewRestyClient(httpclient.Options{
		BaseURL:            *baseURL,
		Timeout:            *timeout,
		InsecureSkipVerify: *insecure,
	})
	bridge := bridgeapi.NewBridgeClient(client, *token, log)

	var (
		out any
		err error
	)
	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "login":
		tok := *token
		if len(cmdArgs) > 0 {
			tok = cmdArgs[0]
		}
		out, err = bridgeapi.NewAuthClient(client, log).Login(ctx, tok)
	case "locks":
		out, err = bridge.ListLocks(ctx)
	case "state":
		var id int64
		if id, err = lockID(cmdArgs); err == nil {
			out, err = bridge.LockState(ctx, id)
		}
	case "action":
		out, err = runAction(ctx, bridge, cmdArgs, *noWait)
	case "callbacks":
		out, err = runCallbacks(ctx, bridge, cmdArgs)
	default:
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
	if err != nil {
		return err
	}
	return printJSON(stdout, out)
}

func runAction(ctx context.Context, bridge *bridgeapi.BridgeClient, args []string, noWait bool) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("action expects <nukiId> <action>")
	}
	id, err := lockID(args[:1])
	if err != nil {
		return nil, err
	}
	action, err := bridgeapi.ParseLockAction(args[1])
	if err != nil {
		return nil, err
	}
	return bridge.LockAction(ctx, id, action, noWait)
}

func runCallbacks(ctx context.Context, bridge *bridgeapi.BridgeClient, args []string) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("callbacks expects list, add <url> or remove <id>")
	}
	switch args[0] {
	case "list":
		return bridge.ListCallbacks(ctx)
	case "add":
		if len(args) != 2 {
			return nil, fmt.Errorf("callbacks add expects <url>")
		}
		return bridge.AddCallback(ctx, args[1])
	case "remove":
		if len(args) != 2 {
			return nil, fmt.Errorf("callbacks remove expects <id>")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("invalid callback id %q: %w", args[1], err)
		}
		return bridge.RemoveCallback(ctx, id)
	default:
		return nil, fmt.Errorf("unknown callbacks subcommand %q", args[0])
	}
}

func lockID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing <nukiId>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid nukiId %q: %w", args[0], err)
	}
	return id, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
