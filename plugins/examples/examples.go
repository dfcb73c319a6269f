// Command examples is a sample built-in plugin. Build it with
//
//	go build -buildmode=plugin -o uptime.so ./plugins/examples
//
// and list the .so under plugins in the shell configuration.
package main

import (
	"fmt"
	"io"
	"time"
)

var started = time.Now()

type uptimePlugin struct{}

func (uptimePlugin) Name() string {
	return "uptime"
}

func (uptimePlugin) Execute(out io.Writer, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("uptime: too many arguments")
	}
	_, err := fmt.Fprintf(out, "up %s\n", time.Since(started).Round(time.Second))
	return err
}

// Plugin is looked up by the shell's plugin loader.
var Plugin uptimePlugin

func main() {}
