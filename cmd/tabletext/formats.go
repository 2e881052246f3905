package main

import (
	"fmt"

	"github.com/safing/tabletext/formats/dsd"
	"github.com/safing/tabletext/serializer"
	"github.com/safing/tabletext/serializers/delimited"
	"github.com/safing/tabletext/serializers/fixedlength"
	"github.com/safing/tabletext/serializers/structured"
)

// Format names accepted on the command line.
const (
	formatCSV   = "csv"
	formatTSV   = "tsv"
	formatFixed = "fixed"
)

// factoryFor returns the serializer factory for the named format. The
// options not selectable on the command line come from the configuration.
func factoryFor(format string) (serializer.Factory, error) {
	switch format {
	case formatCSV:
		return delimited.New(delimited.DefaultOptions()), nil
	case formatTSV:
		opts := delimited.DefaultOptions()
		opts.Separator = '\t'
		return delimited.New(opts), nil
	case formatFixed:
		return fixedlength.New(fixedlength.DefaultOptions()), nil
	case "structured":
		return structured.New(structured.DefaultOptions()), nil
	}

	dsdFormat, err := dsd.ParseSerializationFormat(format)
	if err != nil || dsdFormat == dsd.AUTO || dsdFormat == dsd.RAW {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	opts := structured.DefaultOptions()
	opts.Format = dsdFormat
	return structured.New(opts), nil
}
