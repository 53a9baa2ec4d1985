// Package tokenizer converts TeX input into a stream of tokens.
//
// Tokens are produced lazily, one at a time, and the category code
// table is consulted for every character.  This allows category code
// changes (for example by \makeatletter) to take effect immediately
// for the input which follows.
package tokenizer
