// xenon-content - content catalog maintenance tool
//
// Inspects and edits the sqlite catalog the emulator's content
// enumerator serves to titles.
//
// Usage:
//   xenon-content --config xenon.toml --list 1
//   xenon-content --catalog content.db --add --device 1 --type 1 \
//       --name "Slot 1" --file save01.dat
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chazu/xenon/config"
	"github.com/chazu/xenon/content"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	configPath  = flag.String("config", "xenon.toml", "Path to the emulator configuration file")
	catalogDSN  = flag.String("catalog", "", "Catalog DSN (overrides the configured one)")
	verbosity   = flag.Int("verbose", 0, "Log verbosity (0 = quiet)")
	addEntry    = flag.Bool("add", false, "Add a catalog entry and exit")
	listType    = flag.Uint("list", 0, "List entries of the given content type and exit")
	showCount   = flag.Bool("count", false, "Print the total entry count and exit")
	deviceID    = flag.Uint("device", 1, "Device identifier for --add")
	contentType = flag.Uint("type", 1, "Content type for --add (1 = saved game)")
	displayName = flag.String("name", "", "Display name for --add")
	fileName    = flag.String("file", "", "Package file name for --add")
)

func main() {
	flag.Parse()
	commonlog.Configure(*verbosity, nil)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xenon-content: %v\n", err)
		os.Exit(1)
	}

	dsn := cfg.Content.CatalogDSN
	if *catalogDSN != "" {
		dsn = *catalogDSN
	}

	cat, err := content.Open(dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xenon-content: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	switch {
	case *addEntry:
		if *displayName == "" || *fileName == "" {
			fmt.Fprintln(os.Stderr, "xenon-content: --add needs --name and --file")
			os.Exit(1)
		}
		err = cat.Add(content.Entry{
			DeviceID:    uint32(*deviceID),
			ContentType: uint32(*contentType),
			DisplayName: *displayName,
			FileName:    *fileName,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "xenon-content: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added %q (%s)\n", *displayName, *fileName)

	case *listType != 0:
		entries, err := cat.List(uint32(*listType))
		if err != nil {
			fmt.Fprintf(os.Stderr, "xenon-content: %v\n", err)
			os.Exit(1)
		}
		for _, e := range entries {
			fmt.Printf("device=%d type=%#x %-32q %s\n", e.DeviceID, e.ContentType, e.DisplayName, e.FileName)
		}
		fmt.Printf("Total: %d entries\n", len(entries))

	case *showCount:
		n, err := cat.Count()
		if err != nil {
			fmt.Fprintf(os.Stderr, "xenon-content: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(n)

	default:
		flag.Usage()
		os.Exit(2)
	}
}
