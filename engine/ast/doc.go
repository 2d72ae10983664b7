/*
Package ast implements the node tree produced by the Kumihan parsers.

Nodes carry a type tag, attributes and either literal text or child nodes.
The tree is handed over to a rendering collaborator as-is; rendering and
styling are not this module's concern.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ast

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'kumihan.ast'.
func tracer() tracing.Trace {
	return tracing.Select("kumihan.ast")
}
