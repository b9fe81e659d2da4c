/*
flag Package set up cli flags shared across services

Usage:

	Flags listed in this package are shared across binaries and service-agnostic.
	Call ParseFlags once from main. Tests never parse, so they see defaults.
*/

package flag

import (
	"flag"
)

const (
	APIServer = "api_server"
	AdminCLI  = "blogctl"
)

var (
	IsDevelopment = flag.Bool("dev", true, "set to true if the current run is for development. default value is true")
	ServiceName   = flag.String("service", APIServer, "'api_server' or 'blogctl'")
	AppConfigPath = flag.String("app_config_path", "cmd/server/config.yaml", "path to server app config")
)

func ParseFlags() {
	flag.Parse()
}
