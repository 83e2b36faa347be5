package commands

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	ferrors "git.home.luguber.info/inful/mdbook-force-relative-links/internal/foundation/errors"
	"git.home.luguber.info/inful/mdbook-force-relative-links/internal/version"
)

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	g := &Global{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name(BinaryName),
		kong.Description("An mdbook preprocessor which converts absolute links to relative ones"),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.Version},
		kong.Bind(g),
		kong.Exit(func(code int) { panic(exitRequest{code: code}) }),
	)
	if err != nil {
		return handle(g, false, ferrors.InternalError("failed to build command line parser").WithCause(err).Build())
	}

	kctx, code, exited, err := parse(parser, args)
	if exited {
		return code
	}
	if err != nil {
		return handle(g, cli.Verbose, ferrors.ValidationError("invalid command line").WithCause(err).Build())
	}

	if g.Logger == nil {
		g.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if err := kctx.Run(&cli); err != nil {
		return handle(g, cli.Verbose, err)
	}
	return g.exitCode
}

// exitRequest carries the code kong asks to exit with after --help or --version.
type exitRequest struct{ code int }

// parse runs the kong parser, turning its exit requests into a returned code so the
// process only ever exits from main.
func parse(parser *kong.Kong, args []string) (kctx *kong.Context, code int, exited bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			req, ok := r.(exitRequest)
			if !ok {
				panic(r)
			}
			kctx, code, exited, err = nil, req.code, true, nil
		}
	}()
	kctx, err = parser.Parse(args)
	return kctx, 0, false, err
}

// handle reports err through the classified error adapter and returns its exit code.
func handle(g *Global, verbose bool, err error) int {
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(g.Stderr, nil))
	}
	code := 1
	ferrors.NewCLIErrorAdapter(verbose, logger).
		WithStderr(g.Stderr).
		WithExit(func(c int) { code = c }).
		HandleError(err)
	return code
}
