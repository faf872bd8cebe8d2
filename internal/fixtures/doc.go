// Package fixtures holds the generated codecs of the seed records in
// seeds.bb. Tests check them against the codec interpreter.
package fixtures

//go:generate go run ../../cmd/bebytesgen generate -p fixtures -o seeds_gen.go seeds.bb
