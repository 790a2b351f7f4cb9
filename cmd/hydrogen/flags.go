package main

import (
	"flag"
	"strconv"
)

// float32Value is a flag.Value bound to a float32 field.
type float32Value struct{ p *float32 }

func (v float32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*v.p), 'g', -1, 32)
}

func (v float32Value) Set(s string) error {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*v.p = float32(f)
	return nil
}

func float32Var(fs *flag.FlagSet, p *float32, name, usage string) {
	fs.Var(float32Value{p}, name, usage)
}

// uint32Value is a flag.Value bound to a uint32 field.
type uint32Value struct{ p *uint32 }

func (v uint32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*v.p), 10)
}

func (v uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*v.p = uint32(n)
	return nil
}

func uint32Var(fs *flag.FlagSet, p *uint32, name, usage string) {
	fs.Var(uint32Value{p}, name, usage)
}
