package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/brandonbloom/mdcore"
	"github.com/brandonbloom/mdcore/mdbridge"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

func main() {
	var (
		outputFile  = flag.String("output", "/dev/stdout", "Output file to write")
		outputShort = flag.String("o", "/dev/stdout", "Output file to write (shorthand)")
		maxDepth    = flag.Int("max-depth", mdcore.DefaultMaxDepth, "Maximum nesting depth before parsing aborts")
		asHTML      = flag.Bool("html", false, "Render to HTML instead of re-emitting Markdown")

		fenced   = flag.Bool("fenced-code", true, "Enable fenced code blocks")
		tables   = flag.Bool("tables", true, "Enable tables")
		footnote = flag.Bool("footnotes", true, "Enable footnotes")
		autolink = flag.Bool("autolink", true, "Enable bare/angle-bracket autolinks")
		strike   = flag.Bool("strikethrough", true, "Enable ~~strikethrough~~")
		commonmk = flag.Bool("commonmark", false, "Enable CommonMark-mode rules")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <file>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nParses a Markdown file and re-renders it.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  <file>    Markdown file to parse\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Error: exactly one input file must be specified\n")
		flag.Usage()
		os.Exit(1)
	}

	opts := mdcore.Options{MaxDepth: *maxDepth}
	if *fenced {
		opts.Features |= mdcore.FeatureFenced
	}
	if *tables {
		opts.Features |= mdcore.FeatureTables
	}
	if *footnote {
		opts.Features |= mdcore.FeatureFootnotes
	}
	if *autolink {
		opts.Features |= mdcore.FeatureAutolink
	}
	if *strike {
		opts.Features |= mdcore.FeatureStrike
	}
	if *commonmk {
		opts.Features |= mdcore.FeatureCommonMark
	}

	output := *outputFile
	if *outputShort != "/dev/stdout" {
		output = *outputShort
	}

	if err := run(args[0], output, opts, *asHTML); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inputFile, outputFile string, opts mdcore.Options, asHTML bool) error {
	content, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", inputFile, err)
	}

	doc := mdcore.NewDocument(opts)
	root, _, err := doc.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse file %q: %w", inputFile, err)
	}
	defer root.Release()

	var writer io.Writer
	if outputFile == "/dev/stdout" {
		writer = os.Stdout
	} else {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file %q: %w", outputFile, err)
		}
		defer f.Close()
		writer = f
	}

	gdoc, source := mdbridge.Convert(root)
	if asHTML {
		renderer := renderer.NewRenderer(renderer.WithNodeRenderers(
			util.Prioritized(html.NewRenderer(), 1000),
			util.Prioritized(extension.NewTableHTMLRenderer(), 500),
			util.Prioritized(extension.NewFootnoteHTMLRenderer(), 500),
			util.Prioritized(extension.NewStrikethroughHTMLRenderer(), 500),
		))
		if err := renderer.Render(writer, source, gdoc); err != nil {
			return fmt.Errorf("failed to render HTML for %q: %w", inputFile, err)
		}
		return nil
	}

	renderer := mdbridge.NewMarkdownRenderer()
	if err := renderer.Render(writer, source, gdoc); err != nil {
		return fmt.Errorf("failed to render markdown for %q: %w", inputFile, err)
	}
	return nil
}
