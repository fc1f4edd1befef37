package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/justyntemme/launchgrid/internal/app"
	"github.com/justyntemme/launchgrid/internal/config"
)

func main() {
	debug := flag.Bool("debug", false, "Enable verbose logging")
	configPath := flag.String("config", "", "Path to config.json (default ~/.config/launchgrid/config.json)")
	rescan := flag.Bool("rescan", false, "Discard the saved layout and arrange apps from a fresh scan")
	storeBackend := flag.String("store", "", "Switch the layout store to json or sqlite, migrating the saved layout")
	resetConfig := flag.Bool("reset-config", false, "Back up the config file, write the defaults and exit")
	flag.Parse()

	if *resetConfig {
		path := *configPath
		if path == "" {
			path = config.ConfigPath()
		}
		backup, err := config.GenerateConfig(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if backup != "" {
			fmt.Println("backed up", backup)
		}
		fmt.Println("wrote", path)
		return
	}

	// Handle OS-specific console visibility
	manageConsole(*debug)

	app.Main(app.Options{
		Debug:      *debug,
		ConfigPath: *configPath,
		Rescan:     *rescan,
		Store:      *storeBackend,
	})
}
