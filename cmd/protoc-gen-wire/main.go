package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/protoc-gen-wire/protoc-gen-wire/internal/plugin"
)

const version = "protoc-gen-wire 0.1.0"

const usage = `protoc-gen-wire is a protoc plugin that emits Go structs and
wire-format Encode methods for .proto message declarations.

Invoke it through protoc:

	protoc --wire_out=. --plugin=protoc-gen-wire path/to/file.proto

With no arguments it reads a binary CodeGeneratorRequest on stdin and
writes a binary CodeGeneratorResponse on stdout, as the protoc plugin
protocol requires.
`

func main() {
	flag.CommandLine.SetOutput(os.Stdout)
	flag.Usage = func() { fmt.Print(usage) }
	showVersion := flag.Bool("version", false, "print the version and exit")
	dumpDir := flag.String("dump_dir", "", "also write generated files to this directory, for local debugging outside protoc")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	req, err := plugin.ReadRequest(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	resp := plugin.Generate(req)

	if *dumpDir != "" {
		if err := plugin.DumpFiles(resp, *dumpDir); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := plugin.WriteResponse(os.Stdout, resp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
