package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fumin/arith"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
)

var (
	flagConfig = flag.String("c", `{
		"Method": "range",
		"Verify": true
		}`, "configuration")
	verbose = flag.Bool("verbose", false, "verbosity")
)

func parseConfig() (arith.Config, error) {
	config := arith.Config{}
	if err := json.Unmarshal([]byte(*flagConfig), &config); err != nil {
		return arith.Config{}, errors.Wrap(err, "")
	}
	log.Printf("config: %# v", pretty.Formatter(config))
	return config, nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] filename\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	name := flag.Arg(0)
	if name == "" {
		flag.Usage()
		os.Exit(1)
	}

	config, err := parseConfig()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if *verbose {
		config.Logger = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	}
	if err := arith.Compress(os.Stdout, name, config); err != nil {
		log.Fatalf("%+v", err)
	}
}
