/*
Package database stores table snapshots in a pluggable storage backend.

A snapshot holds the records of a table together with metadata about when
and how it was stored:

	version   varint, currently 1
	meta      varint length prefixed msgpack Meta
	document  dsd encoded table document, optionally compressed

Storage backends register themselves with the storage package and are
selected by name when opening a database:

	import (
		"github.com/safing/tabletext/database"
		_ "github.com/safing/tabletext/database/storage/bbolt"
	)

	db, err := database.Open("tables", "bbolt", "/var/lib/tabletext")
	if err != nil {
		return err
	}
	defer db.Close()

	meta, err := db.SaveTable("reports/2024", t)
*/
package database
