// Package fmtt prints an error's full causal chain for janus's fatal
// config-load path, where a bare err.Error() string collapses the detail a
// ConfigInvalid error wraps.
package fmtt

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// PrintErrChain walks err's Unwrap chain and prints one line per layer
// with its concrete type, outermost first.
func PrintErrChain(w io.Writer, err error) {
	if err == nil {
		fmt.Fprintln(w, "<nil>")
		return
	}
	for i, e := 0, err; e != nil; i, e = i+1, errors.Unwrap(e) {
		fmt.Fprintf(w, "[%d] %T: %v\n", i, e, e)
	}
}

// PrintErrChainVerbose is PrintErrChain plus a spew.Dump and a reflected
// field listing per layer, for -verbose diagnostics on a fatal exit.
func PrintErrChainVerbose(w io.Writer, err error) {
	for i, e := 0, err; e != nil; i, e = i+1, errors.Unwrap(e) {
		fmt.Fprintf(w, "[%d] %T\n", i, e)
		fmt.Fprintf(w, "    Error(): %v\n", e)
		spew.Fdump(w, e)

		rv := reflect.ValueOf(e)
		rt := reflect.TypeOf(e)
		if rt.Kind() == reflect.Ptr {
			rv = rv.Elem()
			rt = rt.Elem()
		}
		if rt.Kind() == reflect.Struct {
			for j := 0; j < rt.NumField(); j++ {
				f := rt.Field(j)
				v := rv.Field(j)
				if v.CanInterface() {
					fmt.Fprintf(w, "    field %s (%s): %+v\n", f.Name, f.Type, v.Interface())
				}
			}
		}
	}
}
