package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dfryer1193/bghfeed/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	app.ConfigureLogging(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &cli{
		out:    os.Stdout,
		errOut: os.Stderr,
		open: func() (*app.App, error) {
			return app.New(app.NewConfigFromEnv())
		},
	}

	if err := newRootCmd(c).ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
