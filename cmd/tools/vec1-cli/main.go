package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/annel0/vector1/internal/calc"
	"github.com/annel0/vector1/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run разбирает флаги и выполняет команду; возвращает код выхода
func run(argv []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vec1-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		op      = fs.String("op", "", "Operation name (see -list)")
		args    = fs.String("args", "", "Operation arguments (comma-separated, NaN/+Inf/-Inf allowed)")
		list    = fs.Bool("list", false, "List available operations")
		asJSON  = fs.Bool("json", false, "Print the full result as JSON")
		verbose = fs.Bool("v", false, "Verbose logging")
	)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	level := logging.WARN
	if *verbose {
		level = logging.TRACE
	}
	logger, err := logging.NewLoggerWithOptions("cli", logging.Options{MinConsoleLevel: level})
	if err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 1
	}
	logger.SetOutput(stderr)

	if *list {
		printOperations(stdout)
		return 0
	}

	if *op == "" {
		fmt.Fprintln(stderr, "❌ -op is required")
		fs.Usage()
		return 2
	}

	numbers, err := parseArgs(*args)
	if err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 2
	}

	evaluator := calc.NewEvaluator(nil, logger)
	res, err := evaluator.Evaluate(context.Background(), calc.Request{Op: *op, Args: numbers})
	if err != nil {
		fmt.Fprintf(stderr, "❌ %v\n", err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			fmt.Fprintf(stderr, "❌ %v\n", err)
			return 1
		}
		return 0
	}

	fmt.Fprintln(stdout, res.Text)
	return 0
}

// parseArgs парсит строку с разделителями-запятыми
func parseArgs(s string) ([]calc.Number, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	result := make([]calc.Number, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid argument %q: %w", trimmed, err)
		}
		result = append(result, calc.Number(f))
	}
	return result, nil
}

func printOperations(w io.Writer) {
	for _, op := range calc.Operations() {
		fmt.Fprintf(w, "%-16s arity=%d kind=%-6s %s\n", op.Name, op.Arity, op.Kind, op.Description)
	}
}
