// Command tabletext converts tables between text formats and serves them over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/safing/tabletext/api"
	"github.com/safing/tabletext/config"
	"github.com/safing/tabletext/database"
	_ "github.com/safing/tabletext/database/storage/badger"
	_ "github.com/safing/tabletext/database/storage/bbolt"
	_ "github.com/safing/tabletext/database/storage/fstree"
	_ "github.com/safing/tabletext/database/storage/hashmap"
	_ "github.com/safing/tabletext/database/storage/sinkhole"
	"github.com/safing/tabletext/info"
	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/run"
	"github.com/safing/tabletext/table"
	"github.com/safing/tabletext/tableio"
	"github.com/safing/tabletext/textenc"
	"github.com/safing/tabletext/typeinfo"
	"github.com/safing/tabletext/utils"
)

var (
	inPath    string
	inFormat  string
	outPath   string
	outFormat string

	encodingName string
	bom          bool
	bigEndian    bool

	typeName string
	columns  string
	widths   string

	configPath string
	logLevel   string

	serve  bool
	listen string
	dbType string
	dbDir  string

	showVersion bool
)

func init() {
	flag.StringVar(&inPath, "in", "-", "input file, - for stdin")
	flag.StringVar(&inFormat, "in-format", formatCSV, "input format: csv, tsv, fixed, json, yaml, cbor or msgpack")
	flag.StringVar(&outPath, "out", "-", "output file, - for stdout")
	flag.StringVar(&outFormat, "out-format", "", "output format, defaults to the input format")

	flag.StringVar(&encodingName, "encoding", "", "text encoding of input and output, defaults to the configuration")
	flag.BoolVar(&bom, "bom", false, "write a byte order mark")
	flag.BoolVar(&bigEndian, "big-endian", false, "use big endian byte order for UTF-16 and UTF-32")

	flag.StringVar(&typeName, "type", "table", "name of the table type")
	flag.StringVar(&columns, "columns", "", "columns as name[:kind[:width]],...")
	flag.StringVar(&widths, "widths", "", "column widths for the fixed format, comma separated")

	flag.StringVar(&configPath, "config", "", "yaml configuration file")
	flag.StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warning, error or critical")

	flag.BoolVar(&serve, "serve", false, "serve tables over http instead of converting")
	flag.StringVar(&listen, "listen", "", "listen address, defaults to the configuration")
	flag.StringVar(&dbType, "db-type", "bbolt", "storage type of the table database")
	flag.StringVar(&dbDir, "db", "tabletext-data", "directory of the table database")

	flag.BoolVar(&showVersion, "version", false, "show version and exit")
}

func main() {
	info.Set("tabletext", "0.1.0", "GPLv3")
	flag.Parse()
	if err := info.Check(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if showVersion {
		fmt.Println(info.FullVersion())
		return
	}

	os.Exit(start())
}

func start() int {
	log.SetOutput(os.Stderr, false)

	if configPath != "" {
		if err := config.LoadFile(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
			return 2
		}
	}
	applyLogLevel(logLevel)

	if err := log.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start logging: %s\n", err)
		return 1
	}
	defer log.Shutdown()

	tt, err := parseColumns(typeName, columns, widths)
	if err != nil {
		log.Errorf("main: %s", err)
		return 2
	}

	if serve {
		return run.Run(context.Background(), run.Options{}, func(ctx context.Context) error {
			return serveTables(ctx, tt)
		})
	}

	if err := convertFiles(tt); err != nil {
		log.Errorf("main: %s", err)
		return 1
	}
	return 0
}

func serveTables(ctx context.Context, tt *typeinfo.TableType) error {
	factory, err := factoryFor(inFormat)
	if err != nil {
		return err
	}
	encoding := encodingSettings()

	if dbType != "hashmap" {
		if err := utils.EnsureDirectory(dbDir, 0o700); err != nil {
			return err
		}
	}
	db, err := database.Open("tables", dbType, dbDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warningf("main: failed to close database: %s", err)
		}
	}()

	go maintain(ctx, db)

	address := listen
	if address == "" {
		address = api.ListenAddress()
	}
	return api.Serve(ctx, address, api.NewRouter(db, func() *table.Table {
		t, err := table.New(tt, factory)
		if err != nil {
			// Factories of this command always return a serializer.
			panic(err)
		}
		if encoding != nil {
			t.SetEncoding(encoding.Name, encoding.BigEndian, encoding.BOM)
		}
		return t
	}))
}

func maintain(ctx context.Context, db *database.Database) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := db.Maintain(); err != nil {
				log.Warningf("main: database maintenance failed: %s", err)
			}
		}
	}
}

func convertFiles(tt *typeinfo.TableType) error {
	var in io.Reader = os.Stdin
	if inPath != "-" && inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		in = f
	}

	var out io.Writer = os.Stdout
	if outPath != "-" && outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Warningf("main: failed to close %s: %s", outPath, err)
			}
		}()
		out = f
	}

	target := outFormat
	if target == "" {
		target = inFormat
	}
	n, err := convert(in, out, conversion{
		inFormat:  inFormat,
		outFormat: target,
		tableType: tt,
		encoding:  encodingSettings(),
	})
	if err != nil {
		return err
	}
	log.Infof("main: converted %d records from %s to %s", n, inFormat, target)
	return nil
}

// encodingSettings returns the encoding given on the command line, or nil
// if the configured encoding applies.
func encodingSettings() *textenc.Settings {
	if encodingName == "" && !bom && !bigEndian {
		return nil
	}
	s := textenc.Configured()
	if encodingName != "" {
		s.Name = encodingName
	}
	s.BOM = s.BOM || bom
	s.BigEndian = bigEndian
	return &s
}

// conversion describes a table conversion.
type conversion struct {
	inFormat  string
	outFormat string
	tableType *typeinfo.TableType
	encoding  *textenc.Settings
}

// convert reads a table from r and writes it to w and returns the number of records.
func convert(r io.Reader, w io.Writer, c conversion) (int, error) {
	inFactory, err := factoryFor(c.inFormat)
	if err != nil {
		return 0, err
	}
	outFactory, err := factoryFor(c.outFormat)
	if err != nil {
		return 0, err
	}

	src, err := table.New(c.tableType, inFactory)
	if err != nil {
		return 0, err
	}
	dst, err := table.New(c.tableType, outFactory)
	if err != nil {
		return 0, err
	}
	if c.encoding != nil {
		src.SetEncoding(c.encoding.Name, c.encoding.BigEndian, false)
		dst.SetEncoding(c.encoding.Name, c.encoding.BigEndian, c.encoding.BOM)
	}

	if err := src.Parse(tableio.NewStreamInput(r)); err != nil {
		return 0, fmt.Errorf("failed to read %s table: %w", c.inFormat, err)
	}
	if err := src.Validate(); err != nil {
		log.Warningf("main: input has invalid records: %s", err)
	}

	dst.Header().Reset(src.Header().Names()...)
	for _, rec := range src.Records() {
		dst.Add(rec)
	}

	if err := dst.Save(tableio.NewStreamOutput(w)); err != nil {
		return 0, fmt.Errorf("failed to write %s table: %w", c.outFormat, err)
	}
	return dst.Size(), nil
}
