// Command mynameis records, plays and exports a child's name clips from
// the command line. The interactive front end is mynameis-tui; both share
// the same settings file and storage.
package main
