package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"rmi-forms/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	command := os.Args[1]
	args := os.Args[2:]

	if command == "help" {
		printUsage()
		return 0
	}

	ctx := context.Background()

	var err error
	switch command {
	case "new":
		err = cli.RunNew(ctx, args)
	case "check":
		err = cli.RunCheck(ctx, args)
	case "convert":
		err = cli.RunConvert(ctx, args)
	case "versions":
		err = cli.RunVersions(ctx, args)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		return 1
	}

	if err != nil {
		log.Printf("Command failed: %v", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println(`rmi-forms - RMI minerals sourcing declaration toolkit

Usage:
  rmi-forms <command> [flags]

Commands:
  new        Create an empty declaration snapshot
             --template cmrt|emrt|crt|amrt  [--version <id>] [--locale en-US|zh-CN] [-o file]

  check      Run completeness checks against a snapshot
             <snapshot.json> [--summary] [--format json|yaml]

  convert    Convert between legacy reports and snapshots
             <input.json> [--from legacy|snapshot] [-o file]

  versions   List supported template families and versions
             [--template <family>] [--format text|yaml]

  help       Show this message

Environment:
  RMI_FORMS_OUTPUT_DIR   Directory for derived output files (default ".")
  RMI_FORMS_LOCALE       Locale for new snapshots (default "en-US")
  RMI_FORMS_PRETTY       Set to 0/false to disable indented JSON output

Examples:
  rmi-forms new --template cmrt -o cmrt.json
  rmi-forms check cmrt.json --summary
  rmi-forms convert --from legacy RMI_EMRT_2.1.json
  rmi-forms versions --template amrt`)
}
