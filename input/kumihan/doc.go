/*
Package kumihan implements parsing of Kumihan markup into a node tree.

Kumihan is a line-oriented lightweight notation: block markers (";;;太字" …
";;;"), compound keywords joined by '+', inline markers in list items, ruby
annotations, headings and footnotes. The parser walks a document line by
line, dispatching to block, list and paragraph sub-parsers, and never aborts
on malformed input: unparsable constructs become error nodes carrying a
diagnostic message, optionally accompanied by structured graceful errors
with correction suggestions.

The sequential parser in this package is the reference engine. Package
chunked layers an equivalent parallel execution strategy on top of it for
large documents.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package kumihan

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kumihan.parse'.
func tracer() tracing.Trace {
	return tracing.Select("kumihan.parse")
}
