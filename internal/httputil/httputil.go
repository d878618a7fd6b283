package httputil

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Port is the default HTTP server port.
const Port = 8080

const portFlag = "port"

// NewHTTPCliFlags creates cli flags for the HTTP server.
func NewHTTPCliFlags(defaultPort int) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    portFlag,
			Usage:   "port to bind the HTTP server on",
			Value:   defaultPort,
			EnvVars: []string{"PORT"},
		},
	}
}

// NewHTTPAddressFromContext returns the bind address from cli context.
func NewHTTPAddressFromContext(c *cli.Context) string {
	return fmt.Sprintf(":%d", c.Int(portFlag))
}
