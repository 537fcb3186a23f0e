package main

import "github.com/go-sql-driver/mysql"

// withMultiStatements enables multi statement execution on dsn, which the
// migration files need. An unparsable dsn is returned unchanged so the
// connection attempt reports the error.
func withMultiStatements(dsn string) string {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return dsn
	}
	c.MultiStatements = true
	return c.FormatDSN()
}
