package main

import (
	"flag"
	"log"
	"os"

	"github.com/fumin/arith"
)

var verbose = flag.Bool("verbose", false, "verbosity")

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)

	config := arith.Config{}
	if *verbose {
		config.Logger = log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds)
	}
	if err := arith.Decompress(os.Stdout, os.Stdin, config); err != nil {
		log.Fatalf("%+v", err)
	}
}
