package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"fortio.org/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zephyrtronium/fnplot"
)

func main() {
	var (
		inname, verb string
		lo, hi       float64
		at           *float64
		nl, echo, v  bool
		prec         int
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "number formatting string")
	flag.Float64Var(&lo, "min", -10, "lower end of the sampled range")
	flag.Float64Var(&hi, "max", 10, "upper end of the sampled range")
	flag.Func("at", "evaluate once at x instead of sampling", func(s string) error {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		at = &x
		return nil
	})
	flag.IntVar(&prec, "p", 0, "precision of -at evaluation in bits (0 for float64)")
	flag.BoolVar(&nl, "n", false, "parse separate input lines as separate definitions")
	flag.BoolVar(&echo, "echo", false, "print internal representations")
	flag.BoolVar(&v, "v", false, "trace parsing and sampling")
	flag.Parse()
	if v {
		log.SetLogLevel(log.Verbose)
	}
	if prec < 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	defs := flag.Args()
	in, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	if in != nil {
		d, err := readDefs(in, nl)
		if err != nil {
			log.Fatalf("reading input: %v", err)
		}
		defs = append(defs, d...)
	}

	failed := false
	for _, def := range defs {
		f, err := fnplot.Parse(def)
		if err != nil {
			if errors.Is(err, fnplot.ErrNoFunctionDefined) {
				continue
			}
			log.Errf("%q: %v", def, err)
			failed = true
			continue
		}
		if echo {
			fmt.Println(f.InternalRepresentation())
		}
		if at != nil {
			if err := value(f, *at, verb, uint(prec)); err != nil {
				log.Errf("%s at %g: %v", f.Name(), *at, err)
				failed = true
			}
			continue
		}
		pts, err := f.PlotPoints(lo, hi)
		if err != nil {
			log.Errf("sampling %s: %v", f.Name(), err)
			failed = true
			continue
		}
		w := bufio.NewWriter(os.Stdout)
		for _, p := range pts {
			fmt.Fprintf(w, verb+" "+verb+"\n", p.X, p.Y)
		}
		if err := w.Flush(); err != nil {
			log.Fatalf("writing points: %v", err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// value prints f evaluated with every variable bound to x.
func value(f *fnplot.Function, x float64, verb string, prec uint) error {
	vars := make(map[string]float64, len(f.Vars()))
	for _, v := range f.Vars() {
		vars[v] = x
	}
	if prec == 0 {
		r, err := f.Eval(vars)
		if err != nil {
			return err
		}
		fmt.Printf(verb+"\n", r)
		return nil
	}
	r, err := f.EvalPrec(vars, prec)
	if err != nil {
		return err
	}
	fmt.Printf(verb+"\n", r)
	return nil
}

// readDefs reads definitions from r, one per line if nl, else the whole
// input as one.
func readDefs(r io.Reader, nl bool) ([]string, error) {
	if !nl {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return []string{string(b)}, nil
	}
	var defs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		defs = append(defs, sc.Text())
	}
	return defs, sc.Err()
}

// infile opens the input, decoding UTF-16 when it starts with a byte order
// mark.
func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	log.LogVf("reading definitions from %s", f.Name())
	return transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
}
