// Command movieshelf manages movie collection files from the command line.
//
// Every command reads and writes files through the same session used by the
// terminal UI, so validation and status messages match:
//
//	movieshelf add movies.csv --name Inception --year 2010 --genre Sci-Fi
//	movieshelf list movies.csv
//	movieshelf find movies.csv incepton
//	movieshelf convert movies.csv movies.xml movies.db
//
// The format of a file is taken from its extension unless --format is given.
package main
