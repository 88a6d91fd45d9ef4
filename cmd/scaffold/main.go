// Command scaffold runs the scaffold geometry procedures on STL files.
//
// Usage:
//
//	scaffold volume part.stl
//	scaffold strut [-config job.yaml] [-dir paths] [-o combined_paths.stl]
//	scaffold porosity [-config job.yaml] [-o radius.txt] part.stl
//	scaffold remesh [-voxel 0.05] [-o out.stl] part.stl
//	scaffold preview [-o part.png] part.stl
//
// Numeric results such as Volume and Diameter_1 are stored in a
// part.props.yaml file next to the mesh.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
)

type command struct {
	help string
	run  func(ctx context.Context, args []string) error
}

var commands = map[string]command{
	"volume":   {"print and store the signed volume of a mesh", runVolume},
	"strut":    {"sweep struts along path files and remesh them", runStrut},
	"porosity": {"sample pore sizes of a mesh on a grid", runPorosity},
	"remesh":   {"voxel remesh an existing mesh", runRemesh},
	"preview":  {"render a shaded PNG of a mesh", runPreview},
}

// errSilent is returned by commands that already reported their failure.
var errSilent = errors.New("silent failure")

func main() {
	log.SetFlags(0)
	log.SetPrefix("scaffold: ")
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		log.Printf("unknown command %q", os.Args[1])
		usage()
		os.Exit(2)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.run(ctx, os.Args[2:])
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errSilent):
		os.Exit(1)
	case errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: scaffold <command> [flags] [args]\n\ncommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-9s %s\n", name, commands[name].help)
	}
}

func newFlagSet(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: scaffold %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}
