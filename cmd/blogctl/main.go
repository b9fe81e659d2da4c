package main

import (
	"os"

	"github.com/Luismorlan/blogmux/utils/dotenv"
	"github.com/Luismorlan/blogmux/utils/flag"
	. "github.com/Luismorlan/blogmux/utils/log"
)

func main() {
	*flag.ServiceName = flag.AdminCLI
	InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	if err := newRootCmd(newPostgresEnv()).Execute(); err != nil {
		Log.WithError(err).Error("blogctl failed")
		os.Exit(1)
	}
}
