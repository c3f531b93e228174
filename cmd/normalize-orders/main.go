package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/table_orders/pkg/validate"
)

// CLI-приложение: ответ API заказов → канонические заказы (по одному JSON в строке).
func main() {
	inputPath := flag.String("in", "", "path to backend payload (.json envelope or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	strict := flag.Bool("strict", false, "skip orders without id, table or items instead of emitting fallbacks")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format := validate.InputFormat(*formatStr)
	switch format {
	case validate.FormatAuto, validate.FormatJSON, validate.FormatJSONL:
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q (want auto|json|jsonl)\n", *formatStr)
		os.Exit(2)
	}

	opts := validate.PayloadOptions{Strict: *strict}

	var (
		result validate.PayloadResult
		err    error
	)
	if *inputPath == "" {
		// stdin: auto - конверт JSON
		result, err = validate.NormalizeStream(ctx, os.Stdin, format, opts, os.Stdout)
	} else {
		result, err = validate.NormalizeFile(ctx, *inputPath, format, opts, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "normalize: %v (%s)\n", err, result)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "normalize ok (%s)\n", result)
}
