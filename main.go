package main

import (
	"fmt"
	"log"
	"os"

	"github.com/textmill/corpusdiff/cli"
	"github.com/textmill/corpusdiff/compare"
	"github.com/textmill/corpusdiff/config"
	"github.com/textmill/corpusdiff/server"
	"github.com/textmill/corpusdiff/termstats"
	"github.com/textmill/corpusdiff/util"
)

func help() {
	fmt.Println("corpusdiff - term statistics and corpus comparison")
	fmt.Println("Version: 0.1")
	fmt.Println("License: MIT")

	fmt.Println("CLI Usage: PROGRAM [SUBCOMMAND] [OPTIONS]")
	fmt.Println("----------------------------------")
	fmt.Println("Subcommands:")
	fmt.Println("    cli:                             interactive analysis session")
	fmt.Println("    serve:                           start the JSON API server")
	fmt.Println("    stats DIR [OUT.json]:            term statistics for one corpus directory")
	fmt.Println("    compare DIRX DIRY [OUT.json]:    compare two corpus directories")
	fmt.Println("    help:                            list all commands")
}

func main() {
	cfg := config.Load()

	args := os.Args[1:]
	if len(args) < 1 {
		cli.InitialPrompt(cfg)
		return
	}
	program := args[0]

	switch program {
	case "cli":
		cli.InitialPrompt(cfg)

	case "serve":
		server.Serve(cfg)

	case "stats":
		if len(args) < 2 {
			help()
			os.Exit(1)
		}
		matrix, err := cli.LoadMatrix(cfg, args[1])
		if err != nil {
			log.Fatal(err)
		}
		rows := termstats.Compute(matrix)
		termstats.SortByFrequency(rows)
		cli.RenderStats(rows)
		if len(args) >= 3 {
			if _, err := util.MarshalToFile(rows, true, args[2]); err != nil {
				log.Fatal(err)
			}
		}

	case "compare":
		if len(args) < 3 {
			help()
			os.Exit(1)
		}
		matrixX, err := cli.LoadMatrix(cfg, args[1])
		if err != nil {
			log.Fatal(err)
		}
		matrixY, err := cli.LoadMatrix(cfg, args[2])
		if err != nil {
			log.Fatal(err)
		}
		rows := compare.Corpora(matrixX, matrixY, compare.Options{Smoothing: cfg.Smoothing})
		compare.SortByChiSquared(rows)
		cli.RenderComparison(rows)
		if len(args) >= 4 {
			if _, err := util.MarshalToFile(rows, true, args[3]); err != nil {
				log.Fatal(err)
			}
		}

	case "-help":
		help()

	default:
		help()
	}
}
