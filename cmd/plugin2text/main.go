// Command plugin2text converts between a binary plugin container
// (.esp/.esm/.esl) and its indented text representation (.txt),
// grounded on the original tool's main.cpp: direction is chosen by the
// source file's extension, the destination defaults to the source path
// with its extension swapped, and a handful of boolean flags control
// text serialization. Argument parsing and file I/O are the external
// collaborators spec.md names as out of scope for the core; this
// command is the thin stdlib-only wiring around it.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tesrec/plugin2text/plugin"
	"github.com/tesrec/plugin2text/schema"
	"github.com/tesrec/plugin2text/text"
)

const usage = `Usage: plugin2text <source file> [destination file]

    <source file>              file to convert (*.esp, *.esm, *.esl, *.txt)
    [destination file]         output path

Options:

    --time                     output elapsed time in stdout

Text serialization options:

    --export-timestamp         write timestamps for records
    --preserve-record-order    always write records in the same order as in the plugin
    --preserve-junk            do not clear fields that may contain junk data

If <source file> has ESP/ESM/ESL file extension, then <source file> will be converted
to text format. If <source file> has TXT extension, then <source file> will be converted
to a plugin.

If [destination file] is omitted, then [destination file] is <source file> with extension
changed to plugin or text format.

Examples:
    plugin2text Skyrim.esm Skyrim.txt
        convert Skyrim.esm to text format and write resulting file to Skyrim.txt

    plugin2text Dawnguard.txt Dawnguard.esm
        convert Dawnguard.txt to a plugin and write resulting file to Dawnguard.esm
`

type args struct {
	sourceFile      string
	destinationFile string
	time            bool
	exportTimestamp bool
	preserveOrder   bool
	preserveJunk    bool
}

func parseArgs(argv []string) args {
	var a args
	for _, arg := range argv {
		if strings.HasPrefix(arg, "--") {
			switch strings.TrimPrefix(arg, "--") {
			case "export-timestamp", "export-timestamps":
				a.exportTimestamp = true
			case "time":
				a.time = true
			case "preserve-record-order":
				a.preserveOrder = true
			case "preserve-junk":
				a.preserveJunk = true
			default:
				fmt.Fprintf(os.Stderr, "warning: unknown option %q\n", arg)
			}
			continue
		}
		switch {
		case a.sourceFile == "":
			a.sourceFile = arg
		case a.destinationFile == "":
			a.destinationFile = arg
		default:
			fmt.Fprintf(os.Stderr, "warning: unknown argument %q\n", arg)
		}
	}
	return a
}

func replaceExtension(sourceFile, sourceExt string) string {
	destExt := ".txt"
	if strings.EqualFold(sourceExt, ".txt") {
		destExt = ".esp"
	}
	return strings.TrimSuffix(sourceFile, sourceExt) + destExt
}

func run(argv []string, stderr, stdout *os.File) int {
	a := parseArgs(argv)
	if a.sourceFile == "" {
		fmt.Fprint(stderr, "<source file> argument is missing.\n\n")
		fmt.Fprint(stderr, usage)
		return 1
	}

	ext := filepath.Ext(a.sourceFile)
	dest := a.destinationFile
	if dest == "" {
		dest = replaceExtension(a.sourceFile, ext)
	}

	start := time.Now()

	var err error
	switch strings.ToLower(ext) {
	case ".txt":
		err = convertTextToPlugin(a, dest)
	case ".esp", ".esm", ".esl":
		err = convertPluginToText(a, dest)
	default:
		fmt.Fprintf(stderr, "unrecognized source file extension %q (%q)\n", ext, a.sourceFile)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if a.time {
		fmt.Fprintf(stdout, "Time elapsed: %f seconds\n", time.Since(start).Seconds())
	}
	return 0
}

func convertPluginToText(a args, dest string) error {
	data, err := os.ReadFile(a.sourceFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.sourceFile, err)
	}

	var pluginOpts []plugin.Option
	if a.preserveOrder {
		pluginOpts = append(pluginOpts, plugin.WithPreserveRecordOrder())
	}
	doc, err := plugin.Decode(context.Background(), data, pluginOpts...)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", a.sourceFile, err)
	}

	var textOpts []text.Option
	if a.exportTimestamp {
		textOpts = append(textOpts, text.WithExportTimestamp())
	}
	if a.preserveJunk {
		textOpts = append(textOpts, text.WithPreserveJunk())
	}
	out, err := text.Encode(doc, schema.Default(), textOpts...)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", a.sourceFile, err)
	}

	return os.WriteFile(dest, []byte(out), 0o644)
}

func convertTextToPlugin(a args, dest string) error {
	src, err := os.ReadFile(a.sourceFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", a.sourceFile, err)
	}

	var textOpts []text.Option
	if a.exportTimestamp {
		textOpts = append(textOpts, text.WithExportTimestamp())
	}
	if a.preserveJunk {
		textOpts = append(textOpts, text.WithPreserveJunk())
	}
	doc, err := text.Decode(string(src), schema.Default(), textOpts...)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", a.sourceFile, err)
	}

	var pluginOpts []plugin.Option
	if a.preserveOrder {
		pluginOpts = append(pluginOpts, plugin.WithPreserveRecordOrder())
	}
	out, err := plugin.Encode(context.Background(), doc, pluginOpts...)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", a.sourceFile, err)
	}

	return os.WriteFile(dest, out, 0o644)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, os.Stdout))
}
