/*
Package chunked implements the scalable execution strategy for Kumihan
parsing.

Large documents are split into chunks along safe boundaries, each chunk is
parsed by a private sequential parser in a bounded worker pool, and the
per-chunk node sequences are joined in chunk order. The resulting node
sequence is identical to a plain sequential parse of the same input; only
the timing and memory profile differ. Inputs below the configured
thresholds bypass all of this and go through the sequential engine
directly.

A failing chunk is logged and skipped, never aborting the whole parse;
memory exhaustion and the overall processing timeout are the only fatal
conditions, and even those return the partial results gathered so far.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chunked

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kumihan.chunked'.
func tracer() tracing.Trace {
	return tracing.Select("kumihan.chunked")
}
