// Package verify checks the engine against tables of reference values.
//
// Tables list cases of the form {function, a, x, expected, tolerance} and
// may be written as YAML, TOML or JSON; the loader picks the decoder from
// the file extension. A case passes when the computed value is within
// tolerance of the expected one, absolutely or relatively.
package verify
